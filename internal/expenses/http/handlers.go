package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/money"
)

func (h *Handler) list(c *gin.Context) {
	var q listExpensesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	filter := domain.ListFilter{CategoryID: q.CategoryID, Limit: q.Limit}
	loc := h.svc.Location()
	if q.StartDate != "" {
		start, err := domain.ParseDate(q.StartDate, loc)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Start = &start
	}
	if q.EndDate != "" {
		end, err := domain.ParseEndDate(q.EndDate, loc)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.End = &end
	}

	res, err := h.svc.List(c.Request.Context(), auth.UserID(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, fmt.Sprintf("%d expense(s) found", res.Count), res.Expenses, res.Total, res.Count)
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "expense found", e)
}

func (h *Handler) create(c *gin.Context) {
	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := domain.CreateExpenseRequest{
		Amount:      *req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Date != "" {
		date, err := domain.ParseDate(req.Date, h.svc.Location())
		if err != nil {
			response.Error(c, err)
			return
		}
		in.Date = &date
	}

	e, err := h.svc.Create(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "expense created", e)
}

func (h *Handler) update(c *gin.Context) {
	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := domain.UpdateExpenseRequest{
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date, h.svc.Location())
		if err != nil {
			response.Error(c, err)
			return
		}
		in.Date = &date
	}

	e, err := h.svc.Update(c.Request.Context(), c.Param("id"), auth.UserID(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "expense updated", e)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "expense deleted", deletedResp{ID: id})
}

func (h *Handler) stats(c *gin.Context) {
	var q statsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	s, err := h.svc.Stats(c.Request.Context(), auth.UserID(c), domain.StatsPeriod{Month: q.Month, Year: q.Year})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "statistics calculated", s)
}

// bindError reports an unparseable amount with the same message the service
// uses for non-positive ones.
func bindError(c *gin.Context, err error) {
	if errors.Is(err, money.ErrInvalidAmount) {
		response.Error(c, domain.ErrInvalidAmount)
		return
	}
	response.BindError(c, err)
}
