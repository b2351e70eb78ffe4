package badge

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewValidator(0)
	quantity := big.NewInt(100)

	cases := []struct {
		raw  string
		want Result
	}{
		{"", Result{Accepted: true}},
		{"1", Result{Accepted: true}},
		{"100", Result{Accepted: true}},
		{"0100", Result{Accepted: true}},
		{"101", Result{Accepted: true, Invalid: true}},
		{"150", Result{Accepted: true, Invalid: true}},
		{"0", Result{Accepted: true, Invalid: true}},
		{"1.0", Result{}},
		{"1e2", Result{}},
		{"-5", Result{}},
		{"5 ", Result{}},
		{"abc", Result{}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, v.Validate(c.raw, quantity), c.raw)
	}
}

func TestOutOfRangeNilQuantity(t *testing.T) {
	v := NewValidator(0)

	assert.True(t, v.OutOfRange("1", nil))
	assert.False(t, v.OutOfRange("", nil))
	assert.True(t, v.OutOfRange("x", big.NewInt(10)))
}

func TestReadOnly(t *testing.T) {
	assert.True(t, ReadOnly(nil))
	assert.True(t, ReadOnly(big.NewInt(0)))
	assert.True(t, ReadOnly(big.NewInt(1)))
	assert.False(t, ReadOnly(big.NewInt(2)))
}
