package adminController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/sunrise-cafe/controllers/product"
	userControllers "github.com/junaidrashid-git/sunrise-cafe/controllers/user"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/junaidrashid-git/sunrise-cafe/web"
	"gorm.io/gorm"
)

// DashboardPage is the data behind admin.tmpl.
type DashboardPage struct {
	Products []models.Product `json:"products"`
	Users    []models.User    `json:"users"`
}

// GET /admin
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := productcontroller.ListProducts(c.Request.Context(), db)
		if err != nil {
			slog.Error("Failed to fetch products", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load dashboard"})
			return
		}
		users, err := userControllers.ListUsers(db.WithContext(c.Request.Context()))
		if err != nil {
			slog.Error("Failed to fetch users", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load dashboard"})
			return
		}
		web.Render(c, http.StatusOK, "admin.tmpl", DashboardPage{Products: products, Users: users})
	}
}
