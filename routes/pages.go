package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/controllers/pages"
	productcontroller "github.com/junaidrashid-git/sunrise-cafe/controllers/product"
)

func SetupPageRoutes(r *gin.Engine, deps Deps) {
	r.GET("/", pages.Static("index.tmpl"))
	r.GET("/about", pages.Static("about.tmpl"))
	r.GET("/cart", pages.Static("cart.tmpl"))
	r.GET("/ordering", productcontroller.GetProducts(deps.DB))
}
