package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the unauthenticated auth routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}

// RegisterSession attaches the auth routes that require a bearer token.
func (h *Handler) RegisterSession(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.POST("/logout", h.logout)
}

// RegisterProfile attaches the user profile routes.
func (h *Handler) RegisterProfile(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.POST("/profile", h.createProfile)
	rg.PUT("/profile", h.updateProfile)
	rg.DELETE("/profile", h.deleteProfile)
}
