package orderControllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/junaidrashid-git/sunrise-cafe/web"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryPage is the data behind user_history.tmpl.
type HistoryPage struct {
	Username string         `json:"username"`
	Orders   []models.Order `json:"orders"`
}

// newestFirst orders history by date, breaking ties by id.
var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "order_date"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}}

// findOrders loads orders with their items. A nil userID selects guest orders.
func findOrders(db *gorm.DB, userID *uint) ([]models.Order, error) {
	orders := []models.Order{}
	query := db.Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Clauses(newestFirst)
	if userID == nil {
		query = query.Where("user_id IS NULL")
	} else {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func renderHistory(c *gin.Context, db *gorm.DB, username string, userID *uint) {
	orders, err := findOrders(db.WithContext(c.Request.Context()), userID)
	if err != nil {
		slog.Error("Failed to load order history", "username", username, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load orders"})
		return
	}
	web.Render(c, http.StatusOK, "user_history.tmpl", HistoryPage{Username: username, Orders: orders})
}

// MyHistoryHandler shows the orders of the signed-in user.
func MyHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderHistory(c, db, user.Username, &user.ID)
	}
}

// UserHistoryHandler shows the orders of any user. Admin only.
func UserHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
				return
			}
			slog.Error("Failed to load user", "user_id", id, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load user"})
			return
		}
		renderHistory(c, db, user.Username, &user.ID)
	}
}

// GuestHistoryHandler shows every order placed without a session. Admin only.
func GuestHistoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderHistory(c, db, models.GuestOrdersTitle, nil)
	}
}
