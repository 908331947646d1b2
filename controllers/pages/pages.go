package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
)

// Page is the data every static page template receives.
type Page struct {
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

func currentPage(c *gin.Context) Page {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return Page{}
	}
	return Page{Username: user.Username, IsAdmin: user.IsAdmin}
}

// Static renders a template that needs nothing beyond the visitor's identity.
func Static(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, currentPage(c))
	}
}
