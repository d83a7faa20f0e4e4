package transport

import (
	"fmt"
	"net/http"
	"time"

	cache "github.com/SporkHubr/echo-http-cache"
	"github.com/SporkHubr/echo-http-cache/adapter/memory"
	"github.com/getAlby/communityhub.go/lib"
	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/lib/tokens"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v3"
	"golang.org/x/time/rate"
)

func InitEcho(c *service.Config, logger *lecho.Logger) (e *echo.Echo) {
	e = echo.New()
	e.HideBanner = true

	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("250K"))
	// the default rate limit is the overall max requests/second per client
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(c.DefaultRateLimit))))

	e.Logger = logger
	e.Use(middleware.RequestID())

	// sentry has to be initialized before this middleware is added
	if c.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{}))
	}
	return e
}

func CreateLoggingMiddleware(logger *lecho.Logger) echo.MiddlewareFunc {
	return lecho.Middleware(lecho.Config{
		Logger: logger,
		Enricher: func(c echo.Context, logger zerolog.Context) zerolog.Context {
			return logger.Interface("address", c.Get(tokens.ContextKeyAddress))
		},
	})
}

// CreateRateLimitMiddleware limits authenticated requests per address and anonymous ones per IP.
func CreateRateLimitMiddleware(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(requestsPerSecond), Burst: burst},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			if address, ok := ctx.Get(tokens.ContextKeyAddress).(string); ok && address != "" {
				return address, nil
			}
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, echo.Map{
				"error":   true,
				"code":    9,
				"message": "too many requests",
			})
		},
	}

	return middleware.RateLimiterWithConfig(config)
}

// CreateCacheClient caches GET responses in memory, for immutable records only.
func CreateCacheClient() (*cache.Client, error) {
	memcached, err := memory.NewAdapter(
		memory.AdapterWithAlgorithm(memory.LRU),
		memory.AdapterWithCapacity(10000000),
	)
	if err != nil {
		return nil, fmt.Errorf("Error creating cache client memory adapter: %w", err)
	}

	cacheClient, err := cache.NewClient(
		cache.ClientWithAdapter(memcached),
		cache.ClientWithTTL(10*time.Minute),
		cache.ClientWithRefreshKey("opn"),
	)
	if err != nil {
		return nil, fmt.Errorf("Error creating cache client: %w", err)
	}
	return cacheClient, nil
}

// StartPrometheusEcho instruments e and serves its metrics from a separate echo on the prometheus port.
func StartPrometheusEcho(logger *lecho.Logger, svc *service.CommunityhubService, e *echo.Echo) *echo.Echo {
	echoPrometheus := echo.New()
	echoPrometheus.HideBanner = true
	prom := prometheus.NewPrometheus("echo", nil)
	e.Use(prom.HandlerFunc)
	prom.SetMetricsPath(echoPrometheus)
	echoPrometheus.Logger = logger

	go func() {
		echoPrometheus.Logger.Infof("Starting prometheus on port %d", svc.Config.PrometheusPort)
		if err := echoPrometheus.Start(fmt.Sprintf(":%d", svc.Config.PrometheusPort)); err != nil && err != http.ErrServerClosed {
			echoPrometheus.Logger.Error(err)
		}
	}()
	return echoPrometheus
}
