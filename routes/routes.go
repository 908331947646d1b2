package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/auth"
	userControllers "github.com/junaidrashid-git/sunrise-cafe/controllers/user"
	"github.com/junaidrashid-git/sunrise-cafe/events"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
	"github.com/junaidrashid-git/sunrise-cafe/web"
	"gorm.io/gorm"
)

// Deps is everything the handlers share.
type Deps struct {
	DB           *gorm.DB
	Sessions     *auth.SessionManager
	SecureCookie bool
	CORSOrigins  []string
	Publisher    events.Publisher
	Hub          *events.Hub
	StaticDir    string
}

func (d Deps) sessions() userControllers.Sessions {
	return userControllers.Sessions{Manager: d.Sessions, SecureCookie: d.SecureCookie}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewRouter builds the gin engine with middleware, templates and every route group.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))
	r.Use(middleware.LoadSession(deps.DB, deps.Sessions))
	r.SetHTMLTemplate(web.Templates())

	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
	}

	SetupRoutes(r, deps)
	return r
}

// SetupRoutes is the single entry‐point that wires up the page, auth, order and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupPageRoutes(r, deps)
	SetupAuthRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupAdminRoutes(r, deps)
}
