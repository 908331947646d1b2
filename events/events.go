package events

import (
	"context"
	"errors"
	"time"

	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/shopspring/decimal"
)

// OrderPlaced is published once a checkout transaction has committed.
type OrderPlaced struct {
	OrderID    uint               `json:"order_id"`
	Reference  string             `json:"reference"`
	UserID     *uint              `json:"user_id"`
	Username   string             `json:"username"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Items      []models.OrderItem `json:"items"`
	PlacedAt   time.Time          `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }

// NewOrderPlaced builds the event for a committed order. username is empty for guests.
func NewOrderPlaced(order models.Order, username string) OrderPlaced {
	if order.IsGuest() {
		username = models.GuestOrdersTitle
	}
	return OrderPlaced{
		OrderID:    order.ID,
		Reference:  order.Reference,
		UserID:     order.UserID,
		Username:   username,
		TotalPrice: order.TotalPrice,
		Items:      order.Items,
		PlacedAt:   order.OrderDate,
	}
}

// Publisher delivers order events to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishOrderPlaced(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
