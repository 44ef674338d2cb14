package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"authors-api/internal/shared/middleware"
	"authors-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigin),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthorRoutes(router, c)
	setupBookRoutes(router, c)
	setupUploadRoutes(router, c)

	// Uploaded files are served statically when stored on local disk.
	if c.Config.Upload.Driver == "local" {
		router.Static("/public", c.Config.Upload.Dir)
	}

	return router
}

func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	auth := middleware.Auth(c.JWTManager)

	authors := router.Group("/author")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.POST("", c.AuthorHandler.Create)
		authors.POST("/login", c.AuthorHandler.Login)
		authors.POST("/image-upload", c.AuthorHandler.UploadImage)
		authors.GET("/name/:name", c.AuthorHandler.GetByName)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PUT("/:id", auth, c.AuthorHandler.Update)
		authors.DELETE("/:id", auth, c.AuthorHandler.Delete)
	}
}

func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/book")
	{
		books.GET("", c.BookHandler.List)
		books.POST("", c.BookHandler.Create)
		books.GET("/title/:title", c.BookHandler.GetByTitle)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupUploadRoutes(router *gin.Engine, c *container.Container) {
	router.POST("/file-upload", c.UploadHandler.Upload)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":   "ok",
			"database": "up",
		}
		code := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}

		if c.Config.Redis.Enabled {
			status["cache"] = "up"
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				status["status"] = "degraded"
				status["cache"] = "down"
				code = http.StatusServiceUnavailable
			}
		}

		ctx.JSON(code, status)
	}
}
