package models

import "time"

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Payment methods.
const (
	PaymentMethodFlutterwave = "flutterwave"
	PaymentMethodPOD         = "pod"
)

// Order is created once at checkout and afterwards mutated only through
// status, payment status and tracking updates. Shipping fields are a
// snapshot taken at order time; later profile edits do not touch them.
// UserID is nil for guest checkout.
type Order struct {
	ID                   int         `gorm:"primaryKey" json:"id"`
	UserID               *int        `gorm:"index" json:"user_id,omitempty"`
	Status               string      `gorm:"not null;default:pending" json:"status"`
	Total                float64     `gorm:"not null" json:"total"`
	PaymentMethod        string      `gorm:"not null" json:"payment_method"`
	PaymentStatus        string      `gorm:"not null;default:pending" json:"payment_status"`
	ShippingAddress      string      `json:"shipping_address,omitempty"`
	ShippingCity         string      `json:"shipping_city,omitempty"`
	ShippingState        string      `json:"shipping_state,omitempty"`
	ShippingZipCode      string      `json:"shipping_zip_code,omitempty"`
	ShippingCountry      string      `gorm:"default:Nigeria" json:"shipping_country,omitempty"`
	ShippingMethod       string      `gorm:"default:standard" json:"shipping_method,omitempty"`
	TrackingNumber       string      `json:"tracking_number,omitempty"`
	Notes                string      `json:"notes,omitempty"`
	TransactionReference string      `json:"transaction_reference,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	Items                []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem captures one cart line at purchase time. Price is the unit
// price the customer saw in the cart, deliberately decoupled from the live
// product price so historical orders stay accurate.
type OrderItem struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	OrderID   int     `gorm:"index;not null" json:"order_id"`
	ProductID int     `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}
