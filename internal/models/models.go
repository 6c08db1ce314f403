package models

import (
	"time"
)

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"not null"                 json:"name"`
	Email        string     `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	IsVerified   bool       `gorm:"default:false"            json:"isVerified"`
	VerifyToken  string     `json:"-"`
	OTP          *string    `json:"-"`
	OTPExpiry    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Product is an open document: nothing beyond the id is enforced.
type Product struct {
	ID         string         `gorm:"primaryKey"      json:"id"`
	Attributes map[string]any `gorm:"serializer:json" json:"-"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
}

// Document flattens the product into the shape it is served and indexed as.
func (p *Product) Document() map[string]any {
	doc := make(map[string]any, len(p.Attributes)+1)
	for k, v := range p.Attributes {
		doc[k] = v
	}
	doc["id"] = p.ID
	return doc
}

// CartItem is one line of a cart. Price is the accumulated total for the
// line's current quantity, not the unit price.
type CartItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       uint    `json:"qty"`
}

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null"     json:"userId"`
	Items     []CartItem `gorm:"serializer:json"          json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}
