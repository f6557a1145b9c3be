package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http"
	httpmw "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/validation"
	authhttp "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/http"
	authmw "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/middleware"
	authrepo "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/repository"
	authservice "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/session"
	cathttp "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/http"
	catservice "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/service"
	exphttp "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/http"
	expservice "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/service"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	ExposeErrors bool
	CORSOrigins  []string
	Location     *time.Location
	StoreTimeout time.Duration
	// TrustedProxies may set the client IP through X-Forwarded-For. Nil
	// trusts none.
	TrustedProxies []string

	Logger   *zap.Logger
	Store    store.Store
	Redis    *redis.Client
	Provider authservice.IdentityProvider
	Issuer   *session.Issuer
	Revoker  session.Revoker
	Limiter  *httpmw.RateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	log := dep.Logger
	if log == nil {
		log = zap.NewNop()
	}
	validation.Register()

	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		log.Error("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(httpmw.RequestID())
	r.Use(httpmw.RequestLogger(log))
	r.Use(httpmw.Recovery(log))
	if dep.ExposeErrors {
		r.Use(response.ExposeErrors())
	}
	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	}
	if dep.Limiter != nil {
		r.Use(dep.Limiter.Middleware())
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, healthDeps(dep))
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.GET("", httpapi.Index(dep.ServiceName, dep.Version))
	api.GET("/health", healthHandler.HealthCheck)

	owned := repository.NewOwned(dep.Store, dep.StoreTimeout)
	users := authrepo.NewUserRepository(dep.Store, dep.StoreTimeout)

	categoryService := catservice.NewCategoryService(owned, log)
	expenseService := expservice.NewExpenseService(owned, categoryService, dep.Location, log)
	authService := authservice.NewAuthService(users, dep.Provider, dep.Issuer, dep.Revoker, log)
	profileService := authservice.NewProfileService(users, log)

	requireAuth := authmw.BearerAuth(authService)

	authHandler := authhttp.New(authService, profileService)
	authHandler.RegisterPublic(api.Group("/auth"))
	authHandler.RegisterSession(api.Group("/auth", requireAuth))
	authHandler.RegisterProfile(api.Group("/users", requireAuth))

	cathttp.New(categoryService).Register(api.Group("/categories", requireAuth))
	exphttp.New(expenseService).Register(api.Group("/expenses", requireAuth))

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})

	return r
}

func healthDeps(dep RouterDeps) map[string]httpapi.Pinger {
	deps := map[string]httpapi.Pinger{"store": dep.Store}
	if dep.Redis != nil {
		client := dep.Redis
		deps["redis"] = httpapi.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	} else {
		deps["redis"] = nil
	}
	return deps
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpmw.HeaderRequestID},
		ExposeHeaders:    []string{httpmw.HeaderRequestID, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
