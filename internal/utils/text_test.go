package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Farm Produce", "farm-produce"},
		{"Hello, World!", "hello-world"},
		{"  Trimmed  Name  ", "trimmed-name"},
		{"already-slugged", "already-slugged"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.in))
	}
}

func TestFormatNaira(t *testing.T) {
	assert.Equal(t, "₦12,500.00", FormatNaira(12500))
	assert.Equal(t, "₦0.00", FormatNaira(0))
	assert.Equal(t, "₦1,234,567.50", FormatNaira(1234567.5))
}

func TestDiscountPercentage(t *testing.T) {
	discount := 750.0
	assert.Equal(t, 25, DiscountPercentage(1000, &discount))

	assert.Equal(t, 0, DiscountPercentage(1000, nil))

	tooHigh := 1200.0
	assert.Equal(t, 0, DiscountPercentage(1000, &tooHigh))

	assert.Equal(t, 0, DiscountPercentage(0, &discount))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "hello", TruncateText("hello", 10))
	assert.Equal(t, "hello...", TruncateText("hello world", 5))
	assert.Equal(t, "", TruncateText("", 5))
}
