package userControllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/auth"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"gorm.io/gorm"
)

// Sessions bundles what the account handlers need to hand out session cookies.
type Sessions struct {
	Manager      *auth.SessionManager
	SecureCookie bool
}

// formValue returns the first non-empty form field among names.
func formValue(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := c.PostForm(name); v != "" {
			return v
		}
	}
	return ""
}

func startSession(c *gin.Context, sessions Sessions, user models.User) bool {
	token, _, err := sessions.Manager.Issue(user)
	if err != nil {
		slog.Error("Failed to issue session", "user_id", user.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to start session"})
		return false
	}
	middleware.SetSessionCookie(c, token, sessions.Manager.TTL(), sessions.SecureCookie)
	return true
}

// conflictMessage names which unique field is already taken, username first.
func conflictMessage(db *gorm.DB, username, email string) string {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return "Username already exists."
	}
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err == nil && count > 0 {
		return "Email already registered."
	}
	return ""
}

// POST /signup
func Signup(db *gorm.DB, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(formValue(c, "signup_username", "username"))
		email := strings.TrimSpace(formValue(c, "signup_email", "email"))
		password := formValue(c, "signup_password", "password")
		if username == "" || email == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "All fields are required."})
			return
		}

		db := db.WithContext(c.Request.Context())
		if msg := conflictMessage(db, username, email); msg != "" {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": msg})
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			slog.Error("Failed to hash password", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create account"})
			return
		}

		user := models.User{Username: username, Email: email, PasswordHash: hash}
		if err := db.Create(&user).Error; err != nil {
			// Lost a race with a concurrent signup for the same name or email.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				msg := conflictMessage(db, username, email)
				if msg == "" {
					msg = "Username already exists."
				}
				c.JSON(http.StatusConflict, gin.H{"status": "error", "message": msg})
				return
			}
			slog.Error("Failed to create user", "username", username, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create account"})
			return
		}
		slog.Info("Account created", "user_id", user.ID, "username", user.Username)

		if !startSession(c, sessions, user) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"message":  "Account created successfully!",
			"username": user.Username,
		})
	}
}

// POST /login
func Login(db *gorm.DB, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(formValue(c, "login_username", "username"))
		password := formValue(c, "login_password", "password")

		var user models.User
		err := db.WithContext(c.Request.Context()).Where("username = ?", username).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Error("Failed to load user", "username", username, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to log in"})
			return
		}
		if err != nil || username == "" || !auth.CheckPassword(user.PasswordHash, password) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid username or password."})
			return
		}

		if !startSession(c, sessions, user) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"message":  "Logged in successfully!",
			"username": user.Username,
		})
	}
}

// GET /logout
func Logout(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := middleware.CurrentSession(c); ok {
			if err := sessions.Manager.Revoke(c.Request.Context(), claims); err != nil {
				slog.Error("Failed to revoke session", "user_id", claims.UserID, "err", err)
			}
		}
		middleware.ClearSessionCookie(c, sessions.SecureCookie)
		c.Redirect(http.StatusFound, "/")
	}
}

// ListUsers returns every account by username. Password hashes never leave the model.
func ListUsers(db *gorm.DB) ([]models.User, error) {
	users := []models.User{}
	if err := db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := ListUsers(db.WithContext(c.Request.Context()))
		if err != nil {
			slog.Error("Failed to fetch users", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
