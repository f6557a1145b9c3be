package http

import "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/service"

// Handler serves the auth and user profile endpoints.
type Handler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

func New(authService *service.AuthService, profileService *service.ProfileService) *Handler {
	return &Handler{
		authService:    authService,
		profileService: profileService,
	}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,notblank"`
}

type loginReq struct {
	IDToken string `json:"idToken" binding:"required,notblank"`
}

type profileReq struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	PhotoURL    *string `json:"photoURL" binding:"omitempty,url"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,max=32"`
}
