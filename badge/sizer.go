package badge

import "math/big"

// Field widths in pixels.
const (
	SingleUnitWidth = 60
	MultiUnitWidth  = 85
	WidthPerChar    = 4
	MaxWidth        = 130
)

// BaseWidth is the field width before any input.
func BaseWidth(quantity *big.Int) int {
	if ReadOnly(quantity) {
		return SingleUnitWidth
	}

	return MultiUnitWidth
}

// DisplayWidth grows the base width with the input length.
// It is not capped, see RenderWidth.
func DisplayWidth(base, inputLen int) int {
	return base + WidthPerChar*inputLen
}

// RenderWidth caps a display width at MaxWidth.
func RenderWidth(width int) int {
	if width > MaxWidth {
		return MaxWidth
	}

	return width
}
