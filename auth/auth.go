package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/models"
)

type AuthModule struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewAuthModule(db *gorm.DB, log *zap.SugaredLogger) *AuthModule {
	return &AuthModule{db: db, log: log}
}

func (a *AuthModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/register", a.registerPage)
	router.POST("/register", a.registerPost)
	router.GET("/login", a.loginPage)
	router.POST("/login", a.loginPost)
	router.GET("/logout", a.logout)
	router.GET("/profile", RequireAuth, a.profile)
}

func (a *AuthModule) registerPage(c *gin.Context) {
	if _, ok := CurrentUser(c, a.db); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"flashes": Flashes(c),
	})
}

func (a *AuthModule) registerPost(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"error": "Please fill in all fields with a valid email and a password of at least 8 characters.",
			"email": c.PostForm("email"),
			"name":  c.PostForm("name"),
		})
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", form.Email).First(&existing).Error; err == nil {
		Flash(c, "Account already exists, log in instead.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	passwordHash, err := hashPassword(form.Password)
	if err != nil {
		a.log.Errorw("hashing password", "err", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"error": "Could not create your account. Try again.",
			"email": form.Email,
			"name":  form.Name,
		})
		return
	}

	// The first account ever registered owns the site.
	var count int64
	a.db.Model(&models.User{}).Count(&count)

	user := models.User{
		Email:        form.Email,
		PasswordHash: passwordHash,
		Name:         form.Name,
		IsAdmin:      count == 0,
	}

	if err := a.db.Create(&user).Error; err != nil {
		// Unique index on email catches the race between the lookup above
		// and this insert.
		Flash(c, "Account already exists, log in instead.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := LoginUser(c, user.ID); err != nil {
		a.log.Errorw("saving session after register", "err", err)
	}

	c.Redirect(http.StatusFound, "/")
}

func (a *AuthModule) loginPage(c *gin.Context) {
	if _, ok := CurrentUser(c, a.db); ok {
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"flashes": Flashes(c),
	})
}

func (a *AuthModule) loginPost(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"error": "Please enter your email and password.",
			"email": c.PostForm("email"),
		})
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", form.Email).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"error": "Email does not exist. Try again.",
			"email": form.Email,
		})
		return
	}

	if !checkPasswordHash(form.Password, user.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"error": "Password incorrect. Try again.",
			"email": form.Email,
		})
		return
	}

	if err := LoginUser(c, user.ID); err != nil {
		a.log.Errorw("saving session after login", "err", err)
	}

	c.Redirect(http.StatusFound, "/profile")
}

// logout clears the session unconditionally; logging out without a session is
// not an error.
func (a *AuthModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (a *AuthModule) profile(c *gin.Context) {
	user, ok := CurrentUser(c, a.db)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":      user,
		"logged_in": true,
	})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
