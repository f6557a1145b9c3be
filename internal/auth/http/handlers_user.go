package http

import (
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
)

// getProfile returns the current user's profile
func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "profile found", profile)
}

// createProfile mirrors the authenticated user into the profile collection.
// The body is optional.
func (h *Handler) createProfile(c *gin.Context) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		response.Error(c, domain.ErrMissingToken)
		return
	}

	var req profileReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
	}

	profile, err := h.profileService.Create(c.Request.Context(), p, req.toDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "profile created", profile)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), auth.UserID(c), req.toDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "profile updated", profile)
}

func (h *Handler) deleteProfile(c *gin.Context) {
	if err := h.profileService.Delete(c.Request.Context(), auth.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "profile deleted", nil)
}

func (r profileReq) toDomain() domain.ProfileRequest {
	return domain.ProfileRequest{
		DisplayName: r.DisplayName,
		PhotoURL:    r.PhotoURL,
		PhoneNumber: r.PhoneNumber,
	}
}
