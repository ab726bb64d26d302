package server

import (
	"net/http"
	"time"

	httpHandler "instagram-gateway/interfaces/http"
	"instagram-gateway/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	toolHandler httpHandler.IToolHandler,
	authHandler httpHandler.IAuthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:4201", "http://localhost:3000", "https://localhost:4200", "https://localhost:4201"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// OAuth endpoints stay outside the auth group so the browser redirect
	// from Facebook can reach the callback without a bearer token.
	if authHandler != nil {
		router.GET("/auth/url", authHandler.GetAuthURL)
		router.GET("/auth/callback", authHandler.Callback)
		router.GET("/callback", authHandler.Callback)
	}

	api := router.Group("api")
	api.Use(middleware.Auth())

	api.GET("/tools", toolHandler.List)
	api.POST("/tools/:name", toolHandler.Invoke)

	if authHandler != nil {
		api.GET("/auth/status", authHandler.Status)
		api.POST("/auth/refresh", authHandler.Refresh)
	}

	return router
}
