package cart

// Shipping fee policy, in the same currency unit as product prices. The
// single source of truth for both the on-screen summary and the persisted
// order total.
const (
	// FlatShippingFee is charged unless the subtotal qualifies for free
	// shipping.
	FlatShippingFee = 1500.0
	// FreeShippingThreshold: shipping is free when the subtotal strictly
	// exceeds this amount.
	FreeShippingThreshold = 10000.0
)

// ShippingFee returns the delivery fee for a cart subtotal.
func ShippingFee(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// OrderTotal is the amount actually charged: subtotal plus shipping.
func OrderTotal(subtotal float64) float64 {
	return subtotal + ShippingFee(subtotal)
}
