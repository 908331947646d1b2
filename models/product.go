package models

import "github.com/shopspring/decimal"

// Product is a sellable catalog item. Checkout references products by Name.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // unit price
	ImageURL    string          `gorm:"size:100;not null" json:"image_url"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
}
