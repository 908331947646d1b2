package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestOrdersTitle is the display name used for orders without a user.
const GuestOrdersTitle = "(Guest Orders)"

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Reference  string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	OrderDate  time.Time       `gorm:"not null;index" json:"order_date"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	UserID     *uint           `gorm:"index" json:"user_id"` // nil for guest orders
	User       *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// IsGuest reports whether the order was placed without a session.
func (o Order) IsGuest() bool {
	return o.UserID == nil
}

type OrderItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	OrderID  uint            `gorm:"index;not null" json:"order_id"`
	ItemName string          `gorm:"size:100;not null" json:"item_name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // unit price x quantity
	Quantity int             `gorm:"not null" json:"quantity"`
}
