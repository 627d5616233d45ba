package models

// User is a storefront account. Shipping profile fields are optional and
// act as checkout form defaults.
type User struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string `gorm:"not null" json:"full_name"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
	Country      string `gorm:"default:Nigeria" json:"country,omitempty"`
}
