package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12k", 12000, true},
		{"1.5k", 1500, true},
		{"-5", -5, true},
		{"3,200 pieces", 3200, true},
		{"  42 ", 42, true},
		{"10.9", 10, true},
		{"NaN", 0, false},
		{"", 0, false},
		{"k", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseQuantity(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestParseQuantity_ClampsHugeNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"99999999999999999999", math.MaxInt64},
		{"-99999999999999999999", -math.MaxInt64},
		{"99999999999999999999k", math.MaxInt64},
		{"9999999999999999.5k", math.MaxInt64},
	}
	for _, tt := range tests {
		got, ok := ParseQuantity(tt.in)
		assert.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, math.MaxInt64, QuantityOf("99999999999999999999"))
}

func TestQuantityOf_UnparseableIsZero(t *testing.T) {
	assert.Equal(t, 0, QuantityOf("nan"))
	assert.Equal(t, 0, QuantityOf("n/a"))
	assert.Equal(t, 12000, QuantityOf("12K"))
}

func TestIsInteger(t *testing.T) {
	yes := []string{"1", "10", "2000000", "5k", "3,200", "12 pieces", "-5", "1.5", "007"}
	no := []string{"", "abc", "AB123", "0.0", "qty", "nan", "1-2"}
	for _, s := range yes {
		assert.True(t, IsInteger(s), s)
	}
	for _, s := range no {
		assert.False(t, IsInteger(s), s)
	}
}
