package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/validation"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	catdomain "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/domain"
	catservice "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store/memory"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   json.RawMessage `json:"total"`
	Count   int             `json:"count"`
}

type expense struct {
	ID          string      `json:"id"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	CategoryID  string      `json:"categoryId"`
	Date        time.Time   `json:"date"`
}

type testAPI struct {
	router *gin.Engine
	cats   *catservice.CategoryService
}

func setupAPI(t *testing.T) testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	n := 0
	mem := memory.New().WithIDs(func() string {
		n++
		return fmt.Sprintf("id%02d", n)
	})
	repo := repository.NewOwned(mem, time.Second)
	cats := catservice.NewCategoryService(repo, nil)
	svc := service.NewExpenseService(repo, cats, time.UTC, nil)

	r := gin.New()
	rg := r.Group("/api/expenses", func(c *gin.Context) {
		c.Set(auth.CtxUserID, c.GetHeader("X-Test-User"))
	})
	New(svc).Register(rg)
	return testAPI{router: r, cats: cats}
}

func (a testAPI) category(t *testing.T, user, name string) string {
	t.Helper()
	c, err := a.cats.Create(context.Background(), user, catdomain.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (a testAPI) do(t *testing.T, method, path, user string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestExpenseHandlers_Create(t *testing.T) {
	api := setupAPI(t)
	food := api.category(t, "u1", "Food")

	rr, env := api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
		"amount": 12.5, "description": "lunch", "categoryId": food, "date": "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	e := decode[expense](t, env.Data)
	assert.Equal(t, "12.50", e.Amount.String())
	assert.True(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Equal(e.Date), e.Date.String())

	rr, _ = api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
		"amount": "7.25", "description": "coffee", "categoryId": food,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	cases := []map[string]any{
		{"amount": 0, "description": "x", "categoryId": food},
		{"amount": -3, "description": "x", "categoryId": food},
		{"amount": "abc", "description": "x", "categoryId": food},
		{"description": "x", "categoryId": food},
		{"amount": 1, "description": "  ", "categoryId": food},
		{"amount": 1, "description": "x"},
		{"amount": 1, "description": "x", "categoryId": food, "date": "10/03/2024"},
	}
	for _, body := range cases {
		rr, env := api.do(t, http.MethodPost, "/api/expenses", "u1", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "%v", body)
		assert.False(t, env.Success)
	}

	rr, env = api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
		"amount": "abc", "description": "x", "categoryId": food,
	})
	assert.Equal(t, "amount must be a positive number", env.Message)

	rr, _ = api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
		"amount": 1, "description": "x", "categoryId": "missing",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = api.do(t, http.MethodPost, "/api/expenses", "u2", map[string]any{
		"amount": 1, "description": "x", "categoryId": food,
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestExpenseHandlers_List(t *testing.T) {
	api := setupAPI(t)
	food := api.category(t, "u1", "Food")
	rent := api.category(t, "u1", "Rent")

	for i, amount := range []int{10, 20, 30, 40, 50} {
		rr, _ := api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
			"amount": amount, "description": "meal", "categoryId": food,
			"date": fmt.Sprintf("2024-03-0%dT12:00:00Z", i+1),
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	rr, _ := api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
		"amount": 900, "description": "march rent", "categoryId": rent, "date": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env := api.do(t, http.MethodGet, "/api/expenses?categoryId="+food+"&limit=2", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "150.00", string(env.Total))
	assert.Equal(t, 2, env.Count)
	list := decode[[]expense](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "50.00", list[0].Amount.String())

	rr, env = api.do(t, http.MethodGet, "/api/expenses?startDate=2024-03-02&endDate=2024-03-03", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, "50.00", string(env.Total))

	rr, env = api.do(t, http.MethodGet, "/api/expenses", "u2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, env.Count)
	assert.Equal(t, "0.00", string(env.Total))
	assert.Equal(t, "[]", string(env.Data))

	for _, q := range []string{"limit=abc", "limit=-1", "startDate=yesterday", "startDate=2024-04-01&endDate=2024-03-01"} {
		rr, _ = api.do(t, http.MethodGet, "/api/expenses?"+q, "u1", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestExpenseHandlers_GetUpdateDelete(t *testing.T) {
	api := setupAPI(t)
	food := api.category(t, "u1", "Food")
	rent := api.category(t, "u1", "Rent")

	_, env := api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
		"amount": 10, "description": "lunch", "categoryId": food,
	})
	e := decode[expense](t, env.Data)

	rr, _ := api.do(t, http.MethodGet, "/api/expenses/"+e.ID, "u1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, _ = api.do(t, http.MethodGet, "/api/expenses/"+e.ID, "u2", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, env = api.do(t, http.MethodPut, "/api/expenses/"+e.ID, "u1", map[string]any{
		"amount": "19.99", "categoryId": rent,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[expense](t, env.Data)
	assert.Equal(t, "19.99", updated.Amount.String())
	assert.Equal(t, rent, updated.CategoryID)
	assert.Equal(t, "lunch", updated.Description)

	rr, _ = api.do(t, http.MethodPut, "/api/expenses/"+e.ID, "u1", map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = api.do(t, http.MethodPut, "/api/expenses/"+e.ID, "u1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = api.do(t, http.MethodPut, "/api/expenses/"+e.ID, "u2", map[string]any{"description": "mine"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr, _ = api.do(t, http.MethodPut, "/api/expenses/nope", "u1", map[string]any{"description": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = api.do(t, http.MethodDelete, "/api/expenses/"+e.ID, "u2", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr, env = api.do(t, http.MethodDelete, "/api/expenses/"+e.ID, "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q}`, e.ID), string(env.Data))
	rr, _ = api.do(t, http.MethodDelete, "/api/expenses/"+e.ID, "u1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExpenseHandlers_Stats(t *testing.T) {
	api := setupAPI(t)
	food := api.category(t, "u1", "Food")

	for _, e := range []struct {
		amount string
		date   string
	}{
		{"10.00", "2024-03-05"},
		{"20.00", "2024-03-10"},
		{"30.00", "2024-03-20"},
		{"100.00", "2024-04-02"},
	} {
		rr, _ := api.do(t, http.MethodPost, "/api/expenses", "u1", map[string]any{
			"amount": e.amount, "description": "item", "categoryId": food, "date": e.date,
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr, env := api.do(t, http.MethodGet, "/api/expenses/stats?month=3&year=2024", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats struct {
		Total      json.Number `json:"total"`
		Count      int         `json:"count"`
		Average    json.Number `json:"average"`
		ByCategory map[string]struct {
			Total    json.Number `json:"total"`
			Count    int         `json:"count"`
			Expenses []string    `json:"expenses"`
		} `json:"byCategory"`
		Highest *struct {
			Amount json.Number `json:"amount"`
		} `json:"highest"`
		Lowest *struct {
			Amount json.Number `json:"amount"`
		} `json:"lowest"`
		Period struct {
			Month *int `json:"month"`
			Year  *int `json:"year"`
		} `json:"period"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, "60.00", stats.Total.String())
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, "20.00", stats.Average.String())
	assert.Equal(t, 3, stats.ByCategory[food].Count)
	assert.Len(t, stats.ByCategory[food].Expenses, 3)
	require.NotNil(t, stats.Highest)
	assert.Equal(t, "30.00", stats.Highest.Amount.String())
	assert.Equal(t, "10.00", stats.Lowest.Amount.String())
	require.NotNil(t, stats.Period.Month)
	assert.Equal(t, 3, *stats.Period.Month)

	rr, env = api.do(t, http.MethodGet, "/api/expenses/stats", "u2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), `"highest":null`)
	assert.Contains(t, string(env.Data), `"period":{"month":null,"year":null}`)

	for _, q := range []string{"month=13&year=2024", "month=3", "year=abc"} {
		rr, _ = api.do(t, http.MethodGet, "/api/expenses/stats?"+q, "u1", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}

	rr, env = api.do(t, http.MethodGet, "/api/expenses/stats?month=3", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.Message, "?year=")
}
