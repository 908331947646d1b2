package productcontroller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/junaidrashid-git/sunrise-cafe/web"
	"gorm.io/gorm"
)

// CatalogPage is the data behind ordering.tmpl.
type CatalogPage struct {
	Products []models.Product `json:"products"`
}

// ListProducts returns the whole catalog by name.
func ListProducts(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	products := []models.Product{}
	if err := db.WithContext(ctx).Order("name").Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListProducts(c.Request.Context(), db)
		if err != nil {
			slog.Error("Failed to fetch products", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch products"})
			return
		}
		web.Render(c, http.StatusOK, "ordering.tmpl", CatalogPage{Products: products})
	}
}
