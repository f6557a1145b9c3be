package http

import (
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/money"
)

// Handler bundles the dependencies for expense HTTP endpoints.
type Handler struct {
	svc *service.ExpenseService
}

func New(svc *service.ExpenseService) *Handler {
	return &Handler{svc: svc}
}

type createExpenseReq struct {
	Amount      *money.Amount `json:"amount" binding:"required"`
	Description string        `json:"description" binding:"required,notblank"`
	CategoryID  string        `json:"categoryId" binding:"required,notblank"`
	Date        string        `json:"date"`
}

type updateExpenseReq struct {
	Amount      *money.Amount `json:"amount"`
	Description *string       `json:"description" binding:"omitempty,notblank"`
	CategoryID  *string       `json:"categoryId" binding:"omitempty,notblank"`
	Date        *string       `json:"date"`
}

type listExpensesQuery struct {
	CategoryID string `form:"categoryId"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	Limit      int    `form:"limit" binding:"omitempty,min=1"`
}

type statsQuery struct {
	Month *int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  *int `form:"year" binding:"omitempty,min=1970,max=9999"`
}

type deletedResp struct {
	ID string `json:"id"`
}
