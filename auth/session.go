package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"inkwell/models"
)

const sessionUserKey = "user_id"

// LoginUser establishes an authenticated session for the given user id.
func LoginUser(c *gin.Context, userID int) error {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	return session.Save()
}

// CurrentUser resolves the session to a user record. An absent, malformed or
// stale session resolves to anonymous; the cookie store rejects tampered
// cookies before this is ever reached.
func CurrentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	session := sessions.Default(c)
	raw := session.Get(sessionUserKey)
	if raw == nil {
		return nil, false
	}

	userID, ok := raw.(int)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// Flash queues a message shown on the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	session.Save()
}

// Flashes drains pending flash messages.
func Flashes(c *gin.Context) []interface{} {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) > 0 {
		session.Save()
	}
	return flashes
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get(sessionUserKey)

	if userID == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(sessionUserKey, userID)
	c.Next()
}

// RequireAdmin rejects the request with 403 unless the session resolves to a
// user carrying the admin flag. The wrapped handler never runs on rejection.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c, db)
		if !ok || !user.IsAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(sessionUserKey, user.ID)
		c.Set("current_user", user)
		c.Next()
	}
}
