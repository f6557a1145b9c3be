package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, fmt.Sprintf("%d category(ies) found", len(items)), items)
}

func (h *Handler) get(c *gin.Context) {
	cat, err := h.svc.Get(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "category found", cat)
}

func (h *Handler) create(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cat, err := h.svc.Create(c.Request.Context(), auth.UserID(c), domain.CreateCategoryRequest{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "category created", cat)
}

func (h *Handler) update(c *gin.Context) {
	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cat, err := h.svc.Update(c.Request.Context(), c.Param("id"), auth.UserID(c), domain.UpdateCategoryRequest{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "category updated", cat)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "category deleted", deletedResp{ID: id})
}
