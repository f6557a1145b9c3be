package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
)

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	acct, err := h.authService.Register(c.Request.Context(), domain.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "user registered", acct)
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	acct, err := h.authService.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "login successful", acct)
}

func (h *Handler) me(c *gin.Context) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		response.Error(c, domain.ErrMissingToken)
		return
	}

	acct, err := h.authService.Me(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "user found", acct)
}

func (h *Handler) logout(c *gin.Context) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		response.Error(c, domain.ErrMissingToken)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), p); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "logged out", nil)
}
