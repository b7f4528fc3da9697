package controllers

import (
	"SmartHospital/handlers"
	"SmartHospital/middlewares"
	"SmartHospital/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
	Tokens  *utils.TokenMaker
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler, tokens *utils.TokenMaker) *AuthController {
	return &AuthController{
		Handler: authHandler,
		Tokens:  tokens,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	router.POST("/api/Auth/register", ac.Handler.Register)
	router.POST("/api/Auth/login", ac.Handler.Login)
	router.POST("/api/Auth/refresh-token", ac.Handler.Refresh)
	router.POST("/api/Auth/send-reset-code", ac.Handler.SendResetCode)
	router.POST("/api/Auth/change-password", ac.Handler.ChangePassword)

	// Protected routes: Requires a valid token
	authGroup := router.Group("/api/Auth").Use(middlewares.TokenAuthMiddleware(ac.Tokens))
	{
		authGroup.GET("/me", ac.Handler.Me)
		authGroup.POST("/logout", ac.Handler.Logout)
	}
}
