package hashutil

import (
	"encoding/hex"

	"github.com/btcsuite/btcutil/bech32"
	eParser "github.com/go-errors/errors"
	"golang.org/x/crypto/blake2b"
)

// FingerprintHRP is the human readable part of CIP-14 asset fingerprints.
const FingerprintHRP = "asset"

// Blake2b160 returns the 20 bytes blake2b digest of input data bytes.
func Blake2b160(data []byte) []byte {
	h, err := blake2b.New(20, nil)
	if err != nil {
		// Only fails for sizes outside 1..64 or oversized keys.
		panic(err)
	}
	h.Write(data)
	return h.Sum(nil)
}

// AssetFingerprint returns the CIP-14 fingerprint of policy id and asset name,
// both given as hex strings.
func AssetFingerprint(policyIDHex, assetNameHex string) (string, error) {
	policyID, err := hex.DecodeString(policyIDHex)
	if err != nil {
		return "", eParser.Wrap(err, 0)
	}

	assetName, err := hex.DecodeString(assetNameHex)
	if err != nil {
		return "", eParser.Wrap(err, 0)
	}

	digest := Blake2b160(append(policyID, assetName...))

	words, err := bech32.ConvertBits(digest, 8, 5, true)
	if err != nil {
		return "", eParser.Wrap(err, 0)
	}

	return bech32.Encode(FingerprintHRP, words)
}
