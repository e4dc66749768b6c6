package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"finmov/internal/auth"
	"finmov/internal/config"
	"finmov/internal/handler"
	"finmov/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwts *auth.JWTService,
	tokens auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	movementHandler *handler.MovementHandler,
	userHandler *handler.UserHandler,
	reportHandler *handler.ReportHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Transport-level filter: send unauthenticated or non-admin traffic away
	// from the configured admin page prefixes before any page logic runs.
	// The page handlers repeat the gate themselves.
	e.Use(adminPageFilter(cfg.AdminPagePrefixes, jwts, tokens))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Pages
	e.GET("/", pageHandler.Login)
	e.GET("/login", pageHandler.Login)
	e.GET("/dashboard", pageHandler.Dashboard)
	e.GET("/movements", pageHandler.Movements)
	e.GET("/reports", pageHandler.Reports)
	e.GET("/users", pageHandler.Users)
	e.GET("/user-dashboard", pageHandler.UserDashboard)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes: echo-jwt parses the token when present, LoadSession
	// resolves it into a Session, and the per-group role gate decides. A
	// missing or invalid token is not rejected here so the gate can apply
	// the route's own denial mapping.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(cfg.JWTSecret),
		TokenLookup:            "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + auth.AccessTokenCookie,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	}), auth.LoadSession(tokens))

	// Shared pages list both roles explicitly; there is no role hierarchy.
	secured.GET("/movements", movementHandler.List, auth.RequireRoles(model.RoleAdmin, model.RoleUser))

	adminOnly := auth.RequireRoles(model.RoleAdmin)
	secured.POST("/movements", movementHandler.Create, adminOnly)
	secured.PUT("/movements/:id", movementHandler.Update, adminOnly)
	secured.DELETE("/movements/:id", movementHandler.Delete, adminOnly)

	secured.GET("/users", userHandler.List, adminOnly)
	secured.PUT("/users/:id", userHandler.Update, adminOnly)

	secured.GET("/reports", reportHandler.Get, adminOnly)
}

// adminPageFilter redirects unauthenticated viewers of protected page
// prefixes to the public entry page and non-admin viewers to their landing
// page.
func adminPageFilter(prefixes []string, jwts *auth.JWTService, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			protected := false
			for _, prefix := range prefixes {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					protected = true
					break
				}
			}
			if !protected {
				return next(c)
			}

			sess := auth.SessionFromCookie(c, jwts, tokens)
			if sess == nil {
				return c.Redirect(http.StatusFound, "/")
			}
			if _, err := auth.Authorize(sess, model.RoleAdmin); err != nil {
				return c.Redirect(http.StatusFound, "/user-dashboard")
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
