package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IndexResponse struct {
	Success   bool                         `json:"success"`
	Name      string                       `json:"name"`
	Version   string                       `json:"version"`
	Endpoints map[string]map[string]string `json:"endpoints"`
}

var endpoints = map[string]map[string]string{
	"health": {
		"check": "GET /api/health",
	},
	"auth": {
		"register": "POST /api/auth/register",
		"login":    "POST /api/auth/login",
		"me":       "GET /api/auth/me",
		"logout":   "POST /api/auth/logout",
	},
	"user": {
		"getProfile":    "GET /api/users/profile",
		"createProfile": "POST /api/users/profile",
		"updateProfile": "PUT /api/users/profile",
		"deleteProfile": "DELETE /api/users/profile",
	},
	"categories": {
		"list":   "GET /api/categories",
		"getOne": "GET /api/categories/:id",
		"create": "POST /api/categories",
		"update": "PUT /api/categories/:id",
		"delete": "DELETE /api/categories/:id",
	},
	"expenses": {
		"list":   "GET /api/expenses",
		"getOne": "GET /api/expenses/:id",
		"create": "POST /api/expenses",
		"update": "PUT /api/expenses/:id",
		"delete": "DELETE /api/expenses/:id",
		"stats":  "GET /api/expenses/stats",
	},
}

// Index describes the API and lists its endpoints.
func Index(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, IndexResponse{
			Success:   true,
			Name:      name,
			Version:   version,
			Endpoints: endpoints,
		})
	}
}
