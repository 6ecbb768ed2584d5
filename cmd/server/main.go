package main

import (
	"log"

	"commentbox/internal/config"
	"commentbox/internal/db"
	"commentbox/internal/handlers"
	"commentbox/internal/middleware"
	"commentbox/internal/repository"
	"commentbox/internal/router"
	"commentbox/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()

	// Initialize Database
	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	userRepo := repository.NewUserRepository(conn)
	commentRepo := repository.NewCommentRepository(conn)
	reportRepo := repository.NewReportRepository(conn)

	moderator := services.NewDenylistModerator(cfg.ModerationWords)
	uploads, err := services.NewUploadStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("commentbox_session", store))

	r.HTMLRender = loadTemplates("./web/templates")
	r.Static("/static", "./web/static")

	r.Use(middleware.LoadUser(userRepo))

	authHandler := handlers.NewAuthHandler(userRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, reportRepo, moderator, uploads)

	router.RegisterRoutes(r, authHandler, commentHandler, uploads.Dir())

	log.Printf("commentbox server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layout := templatesDir + "/layouts/base.html"

	r.AddFromFiles("auth/login.html", layout, templatesDir+"/views/auth/login.html")
	r.AddFromFiles("auth/register.html", layout, templatesDir+"/views/auth/register.html")
	r.AddFromFiles("index.html", layout, templatesDir+"/views/index.html")
	r.AddFromFiles("error.html", layout, templatesDir+"/views/error.html")

	return r
}
