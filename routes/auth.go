package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/junaidrashid-git/sunrise-cafe/controllers/user"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
)

// SetupAuthRoutes registers signup, login and logout.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	r.POST("/signup", userControllers.Signup(deps.DB, deps.sessions()))
	r.POST("/login", userControllers.Login(deps.DB, deps.sessions()))
	r.GET("/logout", middleware.RequireSession, userControllers.Logout(deps.sessions()))
}
