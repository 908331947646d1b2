package productcontroller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/junaidrashid-git/sunrise-cafe/web"
	"gorm.io/gorm"
)

// UpdateStock overwrites the stock count of one product from the admin form.
func UpdateStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := strings.TrimSpace(c.PostForm("product_id"))
		stockStr := strings.TrimSpace(c.PostForm("new_stock"))
		if idStr == "" || stockStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "product_id and new_stock are required"})
			return
		}

		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Stock must be a whole number of zero or more"})
			return
		}

		db := db.WithContext(c.Request.Context())
		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
				return
			}
			slog.Error("Failed to load product", "product_id", id, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update product"})
			return
		}

		if err := db.Model(&product).UpdateColumn("stock", stock).Error; err != nil {
			slog.Error("Failed to update stock", "product_id", id, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update product"})
			return
		}
		product.Stock = stock
		slog.Info("Stock updated", "product", product.Name, "stock", stock)

		if web.WantsJSON(c) {
			c.JSON(http.StatusOK, product)
			return
		}
		c.Redirect(http.StatusSeeOther, "/admin")
	}
}
