package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/validation"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/session"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store/memory"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type account struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

type provider struct {
	tokens map[string]domain.Principal
}

func (p *provider) CreateUser(_ context.Context, req domain.RegisterRequest) (*domain.Identity, error) {
	return &domain.Identity{UID: "uid-1", Email: req.Email, DisplayName: req.DisplayName}, nil
}

func (p *provider) DeleteUser(context.Context, string) error { return nil }

func (p *provider) VerifyIDToken(_ context.Context, idToken string) (*domain.Principal, error) {
	if pr, ok := p.tokens[idToken]; ok {
		pr.Source = domain.SourceFirebase
		return &pr, nil
	}
	return nil, domain.ErrInvalidToken
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := repository.NewUserRepository(memory.New(), time.Second)
	prov := &provider{tokens: map[string]domain.Principal{
		"fb-token": {UID: "fb-1", Email: "fb@example.com", Name: "Firebase User"},
	}}
	authSvc := service.NewAuthService(users, prov, session.NewIssuer("test-secret", time.Hour), session.NewRedisRevoker(client), nil)
	h := New(authSvc, service.NewProfileService(users, nil))

	r := gin.New()
	api := r.Group("/api")
	h.RegisterPublic(api.Group("/auth"))
	h.RegisterSession(api.Group("/auth", middleware.BearerAuth(authSvc)))
	h.RegisterProfile(api.Group("/users", middleware.BearerAuth(authSvc)))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func TestRegisterMeLogout(t *testing.T) {
	r := setupRouter(t)

	rr, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "ana@example.com", "password": "secret1", "name": "Ana",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var acct account
	require.NoError(t, json.Unmarshal(env.Data, &acct))
	assert.Equal(t, "uid-1", acct.UID)
	assert.Equal(t, "Ana", acct.Name)
	require.NotEmpty(t, acct.Token)

	rr, env = do(t, r, http.MethodGet, "/api/auth/me", acct.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var me account
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "ana@example.com", me.Email)
	assert.Empty(t, me.Token)

	rr, _ = do(t, r, http.MethodPost, "/api/auth/logout", acct.Token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, env = do(t, r, http.MethodGet, "/api/auth/me", acct.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "token has been revoked", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	cases := []gin.H{
		{"email": "not-an-email", "password": "secret1", "name": "Ana"},
		{"email": "ana@example.com", "password": "123", "name": "Ana"},
		{"email": "ana@example.com", "password": "secret1", "name": "   "},
		{"email": "ana@example.com", "password": "secret1"},
	}
	for _, body := range cases {
		rr, env := do(t, r, http.MethodPost, "/api/auth/register", "", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "%v", body)
		assert.False(t, env.Success)
	}
}

func TestLogin(t *testing.T) {
	r := setupRouter(t)

	rr, env := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"idToken": "fb-token"})
	require.Equal(t, http.StatusOK, rr.Code)
	var acct account
	require.NoError(t, json.Unmarshal(env.Data, &acct))
	assert.Equal(t, "fb-1", acct.UID)
	assert.Equal(t, "Firebase User", acct.Name)
	assert.NotEmpty(t, acct.Token)

	rr, _ = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"idToken": "forged"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProfileEndpoints(t *testing.T) {
	r := setupRouter(t)

	rr, _ := do(t, r, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// A Firebase ID token is accepted directly.
	rr, _ = do(t, r, http.MethodGet, "/api/users/profile", "fb-token", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, env := do(t, r, http.MethodPost, "/api/users/profile", "fb-token", gin.H{"phoneNumber": "+1 555 0100"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var profile domain.Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "fb-1", profile.ID)
	assert.Equal(t, "fb@example.com", profile.Email)
	assert.Equal(t, "Firebase User", profile.DisplayName)

	rr, _ = do(t, r, http.MethodPost, "/api/users/profile", "fb-token", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr, _ = do(t, r, http.MethodPut, "/api/users/profile", "fb-token", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodPut, "/api/users/profile", "fb-token", gin.H{"photoURL": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, env = do(t, r, http.MethodPut, "/api/users/profile", "fb-token", gin.H{"displayName": "Renamed"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Renamed", profile.DisplayName)

	rr, _ = do(t, r, http.MethodDelete, "/api/users/profile", "fb-token", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/api/users/profile", "fb-token", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
