package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFee(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		fee      float64
	}{
		{"small order pays flat fee", 5000, 1500},
		{"threshold exactly still pays", 10000, 1500},
		{"above threshold ships free", 10000.01, 0},
		{"large order ships free", 15000, 0},
		{"empty cart pays flat fee", 0, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fee, ShippingFee(tt.subtotal))
		})
	}
}

func TestOrderTotal(t *testing.T) {
	assert.Equal(t, 6500.0, OrderTotal(5000))
	assert.Equal(t, 11500.0, OrderTotal(10000))
	assert.Equal(t, 15000.0, OrderTotal(15000))
}
