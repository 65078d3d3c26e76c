package main

import (
	"html/template"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inkwell/auth"
	"inkwell/blog"
	"inkwell/common"
	"inkwell/config"
	"inkwell/contact"
	"inkwell/database"
	"inkwell/email"
	"inkwell/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("invalid configuration", "err", err)
	}

	db, err := common.ConnectDb(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("failed to connect to database", "err", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalw("failed to run migrations", "err", err)
	}

	router := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})

	router.Use(sessions.Sessions("inkwell-session", store))

	router.SetFuncMap(template.FuncMap{
		"gravatar": blog.GravatarURL,
		"now": func() time.Time {
			return time.Now()
		},
	})

	router.LoadHTMLGlob("*/views/*.html")

	router.Static("/public", "./public")

	authModule := auth.NewAuthModule(db, log)
	authModule.RegisterRoutes(router)

	blogModule := blog.NewBlogModule(db, log)
	blogModule.RegisterRoutes(router)

	mail := email.NewService(cfg.SMTP)
	contactModule := contact.NewContactModule(mail, log)
	contactModule.RegisterRoutes(router)

	log.Infow("starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalw("failed to start server", "err", err)
	}
}
