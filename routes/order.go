package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/junaidrashid-git/sunrise-cafe/controllers/order"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
)

// SetupOrderRoutes registers checkout and the order history views.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	// Guests may check out; the session, if any, decides the owner.
	r.POST("/purchase", orderControllers.PurchaseHandler(deps.DB, deps.Publisher))

	r.GET("/my_history", middleware.RequireSession, orderControllers.MyHistoryHandler(deps.DB))

	history := r.Group("/history")
	history.Use(middleware.RequireAdmin)
	{
		history.GET("/guests", orderControllers.GuestHistoryHandler(deps.DB))
		history.GET("/:user_id", orderControllers.UserHistoryHandler(deps.DB))
	}
}
