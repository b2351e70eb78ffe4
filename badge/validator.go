package badge

import (
	"math/big"
	"regexp"

	"asset-badge/models"
	"asset-badge/util/convert"
)

// Digits only, no sign, no separator. Decimals are not supported for assets yet.
var quantityPattern = regexp.MustCompile(`^[0-9]+$`)

// Result of validating one keystroke.
type Result struct {
	// Accepted text is forwarded to the owner, rejected text is dropped.
	Accepted bool
	// Invalid marks accepted text outside 0 < t <= quantity.
	Invalid bool
}

// Validator checks quantity text against an asset quantity.
type Validator struct {
	decimals int32
}

// NewValidator creates a validator converting text with the given decimals.
func NewValidator(decimals int32) *Validator {
	return &Validator{decimals: decimals}
}

// Validate never corrects the text, it either drops it or flags it.
func (v *Validator) Validate(raw string, quantity *big.Int) Result {
	if raw != "" && !quantityPattern.MatchString(raw) {
		return Result{}
	}

	return Result{Accepted: true, Invalid: v.OutOfRange(raw, quantity)}
}

// OutOfRange tells if non-empty text is not within 0 < t <= quantity.
func (v *Validator) OutOfRange(raw string, quantity *big.Int) bool {
	if raw == "" {
		return false
	}

	t, err := convert.ToUnit(raw, v.decimals)
	if err != nil {
		return true
	}

	if quantity == nil {
		quantity = new(big.Int)
	}

	return t.Sign() <= 0 || t.Cmp(quantity) > 0
}

// ReadOnly tells if the quantity field can not be edited, a single unit
// asset always transfers exactly its quantity.
func ReadOnly(quantity *big.Int) bool {
	return (&models.Asset{Quantity: quantity}).SingleUnit()
}
