package models

import (
	"math/big"

	"asset-badge/util/convert"
	"asset-badge/util/hashutil"
)

// PolicyIDLength is the hex length of a Cardano minting policy id.
const PolicyIDLength = 56

// Asset is one line item of a multi-asset output. It is owned by the
// transaction builder and only read by the badge.
type Asset struct {
	// Unit is policy id followed by the hex asset name.
	Unit string
	// Quantity is the maximum transferable amount in base units.
	Quantity *big.Int
	// Name is the fallback label.
	Name string

	DisplayName string
	Image       string
	Loaded      bool

	// Input is the quantity text entered by the user.
	Input string
}

// Metadata is what the badge reports once an asset has been resolved.
type Metadata struct {
	DisplayName string `json:"displayName"`
	ImageURI    string `json:"imageUri"`
}

// NewAsset builds an asset from its unit and quantity string.
func NewAsset(unit, quantity, name string) (*Asset, bool) {
	q, ok := convert.ParseQuantity(quantity)
	if !ok || q.Sign() < 0 {
		return nil, false
	}

	if name == "" {
		name = DefaultName(unit)
	}

	return &Asset{Unit: unit, Quantity: q, Name: name}, true
}

// Identity tells two asset values apart as badge rows.
// A different quantity means a different row even for the same unit.
func (a *Asset) Identity() string {
	if a == nil {
		return ""
	}

	return a.Unit + "/" + convert.QuantityString(a.Quantity)
}

// PolicyID returns the policy id part of the unit.
func (a *Asset) PolicyID() string {
	if len(a.Unit) < PolicyIDLength {
		return a.Unit
	}

	return a.Unit[:PolicyIDLength]
}

// AssetNameHex returns the hex asset name part of the unit.
func (a *Asset) AssetNameHex() string {
	if len(a.Unit) <= PolicyIDLength {
		return ""
	}

	return a.Unit[PolicyIDLength:]
}

// Fingerprint returns the CIP-14 fingerprint, empty if the unit is malformed.
func (a *Asset) Fingerprint() string {
	fingerprint, err := hashutil.AssetFingerprint(a.PolicyID(), a.AssetNameHex())
	if err != nil {
		return ""
	}

	return fingerprint
}

// SingleUnit tells if at most one unit exists, which most likely is an NFT.
func (a *Asset) SingleUnit() bool {
	return a.Quantity == nil || a.Quantity.Cmp(big.NewInt(1)) <= 0
}

// DefaultName returns the readable asset name of a unit,
// falling back to the hex name and then the policy id.
func DefaultName(unit string) string {
	a := Asset{Unit: unit}

	if name, ok := convert.HexToReadable(a.AssetNameHex()); ok {
		return name
	}

	if hexName := a.AssetNameHex(); hexName != "" {
		return hexName
	}

	return a.PolicyID()
}
