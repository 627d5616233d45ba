package models

// Category groups products for storefront navigation. Slug is the URL-safe
// identifier used by category routes.
type Category struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}
