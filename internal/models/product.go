package models

import (
	"time"

	"github.com/lib/pq"
)

// Product is a catalog entry. Images keep insertion order; the first entry
// is the primary display image. Inactive products are excluded from public
// listings and search.
type Product struct {
	ID            int            `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description,omitempty"`
	CategoryID    int            `gorm:"index;not null" json:"category_id"`
	Price         float64        `gorm:"not null" json:"price"`
	DiscountPrice *float64       `json:"discount_price,omitempty"`
	Quantity      int            `gorm:"not null;default:0" json:"quantity"`
	SKU           string         `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	Featured      bool           `gorm:"not null;default:false" json:"featured"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
}

// UnitPrice returns the effective selling price: the discount price when
// one is set, otherwise the list price.
func (p Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
