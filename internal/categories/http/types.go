package http

import "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/service"

// Handler bundles the dependencies for category HTTP endpoints.
type Handler struct {
	svc *service.CategoryService
}

func New(svc *service.CategoryService) *Handler {
	return &Handler{svc: svc}
}

type createCategoryReq struct {
	Name  string `json:"name" binding:"required,notblank"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Icon  string `json:"icon" binding:"omitempty,max=16"`
}

type updateCategoryReq struct {
	Name  *string `json:"name" binding:"omitempty,notblank"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Icon  *string `json:"icon" binding:"omitempty,notblank,max=16"`
}

type deletedResp struct {
	ID string `json:"id"`
}
