package userControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/auth"
	"github.com/junaidrashid-git/sunrise-cafe/middleware"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"github.com/junaidrashid-git/sunrise-cafe/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func accountEngine(db *gorm.DB, sessions *auth.SessionManager) *gin.Engine {
	s := Sessions{Manager: sessions}
	r := testutil.NewEngine(db, sessions)
	r.POST("/signup", Signup(db, s))
	r.POST("/login", Login(db, s))
	r.GET("/logout", middleware.RequireSession, Logout(s))
	r.GET("/whoami", func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	return n
}

func TestSignup_CreatesAccountAndSession(t *testing.T) {
	db := testutil.NewDB(t)
	sessions := testutil.NewSessions()
	r := accountEngine(db, sessions)

	w := testutil.Do(r, postForm("/signup", url.Values{
		"signup_username": {"ana"},
		"signup_email":    {"ana@example.com"},
		"signup_password": {"s3cret"},
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Account created successfully!", body["message"])
	assert.Equal(t, "ana", body["username"])

	var user models.User
	require.NoError(t, db.Where("username = ?", "ana").First(&user).Error)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret"))

	cookie := testutil.ResponseCookie(w, auth.SessionCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	who := testutil.Do(r, httptest.NewRequest(http.MethodGet, "/whoami", nil), cookie)
	assert.Equal(t, "ana", who.Body.String())
}

func TestSignup_AcceptsPlainFieldNames(t *testing.T) {
	db := testutil.NewDB(t)
	r := accountEngine(db, testutil.NewSessions())

	w := testutil.Do(r, postForm("/signup", url.Values{
		"username": {"ben"},
		"email":    {"ben@example.com"},
		"password": {"pw"},
	}))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	db := testutil.NewDB(t)
	r := accountEngine(db, testutil.NewSessions())
	before := countUsers(t, db)

	for _, form := range []url.Values{
		{},
		{"signup_username": {"ana"}, "signup_email": {"ana@example.com"}},
		{"signup_username": {"  "}, "signup_email": {"ana@example.com"}, "signup_password": {"pw"}},
	} {
		w := testutil.Do(r, postForm("/signup", form))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields are required.", decode(t, w)["message"])
	}
	assert.Equal(t, before, countUsers(t, db))
}

func TestSignup_Conflicts(t *testing.T) {
	db := testutil.NewDB(t)
	r := accountEngine(db, testutil.NewSessions())
	testutil.CreateUser(t, db, "ana", "pw")
	before := countUsers(t, db)

	w := testutil.Do(r, postForm("/signup", url.Values{
		"signup_username": {"ana"},
		"signup_email":    {"other@example.com"},
		"signup_password": {"pw"},
	}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists.", decode(t, w)["message"])

	// Username is checked first even when both collide.
	w = testutil.Do(r, postForm("/signup", url.Values{
		"signup_username": {"ana"},
		"signup_email":    {"ana@example.com"},
		"signup_password": {"pw"},
	}))
	assert.Equal(t, "Username already exists.", decode(t, w)["message"])

	w = testutil.Do(r, postForm("/signup", url.Values{
		"signup_username": {"ana2"},
		"signup_email":    {"ana@example.com"},
		"signup_password": {"pw"},
	}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered.", decode(t, w)["message"])

	assert.Equal(t, before, countUsers(t, db))
}

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	r := accountEngine(db, testutil.NewSessions())
	testutil.CreateUser(t, db, "ana", "right")

	for _, form := range []url.Values{
		{"login_username": {"ana"}, "login_password": {"wrong"}},
		{"login_username": {"nobody"}, "login_password": {"right"}},
		{},
	} {
		w := testutil.Do(r, postForm("/login", form))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password.", decode(t, w)["message"])
		assert.Nil(t, testutil.ResponseCookie(w, auth.SessionCookie))
	}

	w := testutil.Do(r, postForm("/login", url.Values{"login_username": {"ana"}, "login_password": {"right"}}))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Logged in successfully!", body["message"])
	assert.Equal(t, "ana", body["username"])
	assert.NotNil(t, testutil.ResponseCookie(w, auth.SessionCookie))
}

func TestLogout_RevokesSession(t *testing.T) {
	db := testutil.NewDB(t)
	sessions := testutil.NewSessions()
	r := accountEngine(db, sessions)
	user := testutil.CreateUser(t, db, "ana", "pw")
	cookie := testutil.SessionCookie(t, sessions, user)

	w := testutil.Do(r, httptest.NewRequest(http.MethodGet, "/logout", nil), cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cleared := testutil.ResponseCookie(w, auth.SessionCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// Replaying the old cookie is anonymous.
	who := testutil.Do(r, httptest.NewRequest(http.MethodGet, "/whoami", nil), cookie)
	assert.Equal(t, "anonymous", who.Body.String())

	_, err := sessions.Parse(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)
}

func TestLogout_AnonymousRedirects(t *testing.T) {
	db := testutil.NewDB(t)
	r := accountEngine(db, testutil.NewSessions())

	w := testutil.Do(r, httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestListUsers_HidesPasswordHashes(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, "zed", "pw")
	testutil.CreateUser(t, db, "ana", "pw")

	users, err := ListUsers(db)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "ana", users[0].Username)
	assert.Equal(t, "sunrise_admin", users[1].Username)

	data, err := json.Marshal(users)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "$2a$")
}
