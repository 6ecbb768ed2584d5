package router

import (
	"net/http"
	"strings"

	"commentbox/internal/handlers"
	"commentbox/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, commentHandler *handlers.CommentHandler, uploadDir string) {
	// 公共路由 (Public Routes)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Uploaded media, served back by filename
	r.Static("/uploads", uploadDir)

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/", authHandler.Index)

		authorized.POST("/api/comments", commentHandler.Create)
		authorized.GET("/api/comments", commentHandler.List)
		authorized.POST("/api/comments/:id/like", commentHandler.Like)
		authorized.POST("/api/comments/:id/report", commentHandler.Report)
		authorized.PUT("/api/comments/:id", commentHandler.Update)
		authorized.DELETE("/api/comments/:id", commentHandler.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Recurso no encontrado."})
			return
		}
		handlers.Render(c, http.StatusNotFound, "error.html", gin.H{"Error": "Página no encontrada."})
	})
}
