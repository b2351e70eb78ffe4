package convert

import (
	"encoding/hex"
	"math/big"
	"unicode/utf8"

	eParser "github.com/go-errors/errors"
	"github.com/shopspring/decimal"
)

// ToUnit converts a human readable amount into base units, e.g., "1.5" with
// 6 decimals returns 1500000. Digits beyond the given decimals are truncated.
func ToUnit(amountStr string, decimals int32) (*big.Int, error) {
	if len(amountStr) == 0 {
		return nil, eParser.New("empty amount")
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, eParser.Wrap(err, 0)
	}

	return amount.Shift(decimals).BigInt(), nil
}

// ParseQuantity converts a base-10 integer string to *big.Int,
// the bool result tells if the convertion succeeded.
func ParseQuantity(quantityStr string) (*big.Int, bool) {
	if len(quantityStr) == 0 {
		return nil, false
	}

	return new(big.Int).SetString(quantityStr, 10)
}

// QuantityString converts *big.Int to string, nil becomes "0".
func QuantityString(quantity *big.Int) string {
	if quantity == nil {
		return "0"
	}

	return quantity.String()
}

// HexToReadable decodes a hex encoded byte string, returns false if the
// input is not hex or the decoded bytes are not printable utf-8.
func HexToReadable(hexStr string) (string, bool) {
	bytes, err := hex.DecodeString(hexStr)
	if err != nil || len(bytes) == 0 {
		return "", false
	}

	if !utf8.Valid(bytes) {
		return "", false
	}

	for _, r := range string(bytes) {
		if r < 0x20 || r == 0x7f {
			return "", false
		}
	}

	return string(bytes), true
}
