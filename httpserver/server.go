package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"moviecatalog/auth"
	"moviecatalog/errs"
	"moviecatalog/favorite"
	"moviecatalog/movie"
	"moviecatalog/pkg/authz"
	"moviecatalog/pkg/config"
	pkgjwt "moviecatalog/pkg/jwt"
	"moviecatalog/pkg/metrics"
	"moviecatalog/pkg/sentry"
	"moviecatalog/rating"
	"moviecatalog/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	defaultAddr      = ":8080"
	defaultRateLimit = 20
	claimsContextKey = "user"
)

// AccessTokenParser verifies bearer tokens of the private routes.
type AccessTokenParser interface {
	ParseAccessToken(token string) (*pkgjwt.Claims, error)
}

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// Requests per second allowed per client IP
	RateLimit int

	MovieService    movie.Service
	RatingService   rating.Service
	FavoriteService favorite.Service
	UserService     user.Service
	AuthService     auth.Service

	Tokens AccessTokenParser
	Authz  *authz.Enforcer
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         defaultAddr,
		AllowOrigins: []string{"*"},
		RateLimit:    defaultRateLimit,
		Tokens:       pkgjwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL),
		Authz:        authz.MustNewEnforcer(),
	}
	if cfg.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if origins := splitOrigins(cfg.AllowOrigins); len(origins) > 0 {
		s.AllowOrigins = origins
	}
	if cfg.RateLimit > 0 {
		s.RateLimit = cfg.RateLimit
	}

	s.Router.HideBanner = true
	s.Router.JSONSerializer = JSONSerializer{}
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()
	api := s.Router.Group("/api")

	// PUBLIC
	s.RegisterPublicRoutes(api)

	// PRIVATE
	// token and role checks are per route, not Group.Use
	s.RegisterPrivateRoutes(api,
		echojwt.WithConfig(echojwt.Config{
			ContextKey: claimsContextKey,
			ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
				return s.Tokens.ParseAccessToken(token)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid access token")
			},
		}),
		s.authorize,
	)

	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(requestLogger())
	s.Router.Use(recordMetrics)
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterAuthRoutes(g)
	s.RegisterPublicMovieRoutes(g)
	s.RegisterPublicRatingRoutes(g)
}

func (s *Server) RegisterPrivateRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	s.RegisterPrivateMovieRoutes(g, m...)
	s.RegisterPrivateRatingRoutes(g, m...)
	s.RegisterFavoriteRoutes(g, m...)
	s.RegisterMeRoutes(g, m...)
	s.RegisterUserRoutes(g, m...)
}

func (s *Server) RegisterMetricsRoutes() {
	s.Router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// authorize checks the caller's role against the route policy. It runs after
// the JWT middleware has stored the access token claims.
func (s *Server) authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := currentClaims(c)
		if err != nil {
			return err
		}

		role := authz.RoleOf(claims.IsAdmin)
		method := c.Request().Method
		allowed, err := s.Authz.Allowed(role, c.Request().URL.Path, method)
		if err != nil {
			return err
		}
		if !allowed {
			metrics.RecordAuthzDenied(role, c.Path(), method)
			return errs.Errorf(errs.EFORBIDDEN, "you do not have permission to perform this action")
		}
		return next(c)
	}
}

func currentClaims(c echo.Context) (*pkgjwt.Claims, error) {
	claims, ok := c.Get(claimsContextKey).(*pkgjwt.Claims)
	if !ok || claims == nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "missing or invalid access token")
	}
	return claims, nil
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			}
			slog.LogAttrs(c.Request().Context(), levelFor(v.Status), "request", attrs...)
			return nil
		},
	})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func recordMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		status := c.Response().Status
		if err != nil {
			status, _ = statusAndMessage(err)
		}
		metrics.RecordHTTPRequest(c.Request().Method, c.Path(), status, time.Since(start))
		return err
	}
}

// handleError maps application errors to appropriate HTTP status codes and
// writes them in the API envelope.
func (s *Server) handleError(err error, c echo.Context) {
	// Don't write response if already committed
	if c.Response().Committed {
		return
	}

	status, message := statusAndMessage(err)
	if status >= http.StatusInternalServerError {
		sentry.WithContext(c).Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = writeError(c, status, message, "", err)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func statusAndMessage(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code, fmt.Sprint(he.Message)
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.EFORBIDDEN:
		return http.StatusForbidden, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
