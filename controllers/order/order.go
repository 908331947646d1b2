package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/sunrise-cafe/events"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const publishTimeout = 5 * time.Second

// -------- Request Structs --------

// CartLine is one entry of the browser-held cart. Each entry is a single unit;
// buying three croissants sends three lines.
type CartLine struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CheckoutError is a rejected checkout the customer can act on.
type CheckoutError struct {
	Status  int
	Message string
}

func (e *CheckoutError) Error() string { return e.Message }

var ErrEmptyCart = &CheckoutError{Status: http.StatusBadRequest, Message: "Your cart is empty."}

func errUnavailable(name string) *CheckoutError {
	return &CheckoutError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Sorry, %s is no longer available.", name),
	}
}

func errInsufficientStock(name string, stock int) *CheckoutError {
	return &CheckoutError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Sorry, we only have %d of %s in stock.", stock, name),
	}
}

// -------- Helpers --------

type lineTally struct {
	name        string
	quantity    int
	clientTotal decimal.Decimal
}

// tallyCart groups cart lines by product name, keeping first-appearance order.
func tallyCart(lines []CartLine) []lineTally {
	index := make(map[string]int)
	var tallies []lineTally
	for _, line := range lines {
		i, ok := index[line.Name]
		if !ok {
			i = len(tallies)
			index[line.Name] = i
			tallies = append(tallies, lineTally{name: line.Name})
		}
		tallies[i].quantity++
		tallies[i].clientTotal = tallies[i].clientTotal.Add(line.Price)
	}
	return tallies
}

// decrementStock takes quantity units only if they are still there. A concurrent checkout
// that got there first leaves zero rows affected.
func decrementStock(tx *gorm.DB, product models.Product, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", product.ID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock for %s: %w", product.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		var current models.Product
		if err := tx.Select("stock").First(&current, product.ID).Error; err != nil {
			return fmt.Errorf("failed to re-read stock for %s: %w", product.Name, err)
		}
		return errInsufficientStock(product.Name, current.Stock)
	}
	return nil
}

// -------- Core Logic --------

// Checkout validates the cart against the catalog, records the order and its items and
// takes the stock, all in one transaction. userID is nil for guest checkouts.
// Prices come from the catalog; the prices the client sent are only compared.
func Checkout(ctx context.Context, db *gorm.DB, userID *uint, lines []CartLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	tallies := tallyCart(lines)

	var order models.Order
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Validate everything before the first write; stop at the first bad line.
		products := make([]models.Product, len(tallies))
		for i, t := range tallies {
			if err := tx.Where("name = ?", t.name).First(&products[i]).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errUnavailable(t.name)
				}
				return fmt.Errorf("failed to look up product %q: %w", t.name, err)
			}
			if products[i].Stock < t.quantity {
				return errInsufficientStock(t.name, products[i].Stock)
			}
		}

		total := decimal.Zero
		clientTotal := decimal.Zero
		items := make([]models.OrderItem, len(tallies))
		for i, t := range tallies {
			items[i] = models.OrderItem{
				ItemName: t.name,
				Quantity: t.quantity,
				Price:    products[i].Price.Mul(decimal.NewFromInt(int64(t.quantity))),
			}
			total = total.Add(items[i].Price)
			clientTotal = clientTotal.Add(t.clientTotal)
		}
		if !clientTotal.Equal(total) {
			slog.Warn("Cart prices differ from catalog, using catalog prices",
				"client_total", clientTotal.StringFixed(2),
				"catalog_total", total.StringFixed(2),
			)
		}

		order = models.Order{
			Reference:  uuid.NewString(),
			OrderDate:  time.Now().UTC(),
			TotalPrice: total,
			UserID:     userID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			if err := decrementStock(tx, products[i], items[i].Quantity); err != nil {
				return err
			}
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// PurchaseHandler checks out the JSON cart for the current session, or as a guest.
func PurchaseHandler(db *gorm.DB, publisher events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid cart payload."})
			return
		}

		var lines []CartLine
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &lines); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid cart payload."})
				return
			}
		}

		var userID *uint
		var username string
		if user, ok := middleware.CurrentUser(c); ok {
			id := user.ID
			userID = &id
			username = user.Username
		}

		order, err := Checkout(c.Request.Context(), db, userID, lines)
		if err != nil {
			var checkoutErr *CheckoutError
			if errors.As(err, &checkoutErr) {
				c.JSON(checkoutErr.Status, gin.H{"status": "error", "message": checkoutErr.Message})
				return
			}
			slog.Error("Failed to record purchase", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Something went wrong while recording your purchase.",
			})
			return
		}

		slog.Info("Order placed",
			"order_id", order.ID,
			"reference", order.Reference,
			"guest", order.IsGuest(),
			"total", order.TotalPrice.StringFixed(2),
		)

		// The order is committed; a slow or failing consumer must not fail the purchase.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
		defer cancel()
		if err := publisher.PublishOrderPlaced(ctx, events.NewOrderPlaced(*order, username)); err != nil {
			slog.Error("Failed to publish OrderPlaced", "order_id", order.ID, "err", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"message":     "Purchase recorded successfully!",
			"order_id":    order.ID,
			"reference":   order.Reference,
			"total_price": order.TotalPrice.StringFixed(2),
		})
	}
}
