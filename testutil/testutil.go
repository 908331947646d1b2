// Package testutil builds seeded databases, sessions and engines for handler tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/auth"
	"github.com/junaidrashid-git/sunrise-cafe/config"
	"github.com/junaidrashid-git/sunrise-cafe/database"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/junaidrashid-git/sunrise-cafe/web"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const Secret = "test-secret"

var Admin = config.AdminAccount{
	Username: "sunrise_admin",
	Email:    "admin@sunrisecafe.com",
	Password: "password",
}

func init() {
	gin.SetMode(gin.TestMode)
}

// NewDB returns a migrated and seeded sqlite database in a temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "sunrise.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.Seed(context.Background(), db, Admin))
	return db
}

func NewSessions() *auth.SessionManager {
	return auth.NewSessionManager(Secret, time.Hour, auth.NewMemoryRevocationStore())
}

// NewEngine returns a bare engine with session loading and templates, for mounting single handlers.
func NewEngine(db *gorm.DB, sessions *auth.SessionManager) *gin.Engine {
	r := gin.New()
	r.Use(middleware.LoadSession(db, sessions))
	r.SetHTMLTemplate(web.Templates())
	return r
}

// CreateUser inserts a regular account with the given password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// AdminUser loads the seeded admin.
func AdminUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("username = ?", Admin.Username).First(&user).Error)
	return user
}

// SessionCookie signs a session for user.
func SessionCookie(t *testing.T, sessions *auth.SessionManager, user models.User) *http.Cookie {
	t.Helper()
	token, _, err := sessions.Issue(user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

// Product loads a catalog product by name.
func Product(t *testing.T, db *gorm.DB, name string) models.Product {
	t.Helper()
	var p models.Product
	require.NoError(t, db.Where("name = ?", name).First(&p).Error)
	return p
}

// SetStock overwrites the stock of a catalog product.
func SetStock(t *testing.T, db *gorm.DB, name string, stock int) {
	t.Helper()
	require.NoError(t, db.Model(&models.Product{}).Where("name = ?", name).Update("stock", stock).Error)
}

// Do serves req on h and returns the recorded response.
func Do(h http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ResponseCookie finds a cookie set by the response.
func ResponseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
