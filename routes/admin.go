package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/sunrise-cafe/controllers/admin"
	orderControllers "github.com/junaidrashid-git/sunrise-cafe/controllers/order"
	productcontroller "github.com/junaidrashid-git/sunrise-cafe/controllers/product"
	userControllers "github.com/junaidrashid-git/sunrise-cafe/controllers/user"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires an admin session.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin)
	{
		adminGroup.GET("", adminController.Dashboard(deps.DB))
		adminGroup.GET("/users", userControllers.GetAllUsers(deps.DB))
		adminGroup.POST("/update_stock", productcontroller.UpdateStock(deps.DB))
		adminGroup.GET("/export/inventory.xlsx", productcontroller.ExportInventory(deps.DB))

		if deps.Hub != nil {
			adminGroup.GET("/orders/ws", orderControllers.OrderFeedHandler(deps.Hub))
		}
	}
}
