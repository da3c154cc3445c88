package router

import (
	stderrors "errors"
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"agrimarket/internal/auth"
	"agrimarket/internal/errors"
	"agrimarket/internal/handler"
	"agrimarket/internal/service"
)

// bearerAuth returns the JWT middleware for secured route groups. Parsing is
// delegated to the application's JWT service so the claims type stays in one
// place.
func bearerAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if stderrors.As(err, &extractionErr) {
				return errors.NewHTTP(http.StatusUnauthorized, "Not authorized, no token")
			}
			return errors.NewHTTP(http.StatusUnauthorized, "Not authorized, token failed")
		},
	})
}

// resolveUser turns verified claims into the request-scoped user projection.
// A token whose user record has since disappeared resolves to 404.
func resolveUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return errors.NewHTTP(http.StatusUnauthorized, "Not authorized, token failed")
			}
			user, err := authService.ResolveUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return errors.MapError(err)
			}
			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}
}

// RequireUserType restricts a route to the given user types. It must run
// after resolveUser.
func RequireUserType(types ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := handler.CurrentUser(c)
			if user == nil {
				return errors.NewHTTP(http.StatusUnauthorized, "Not authorized, no token")
			}
			for _, t := range types {
				if user.UserType == t {
					return next(c)
				}
			}
			return errors.NewHTTP(http.StatusForbidden,
				fmt.Sprintf("User role '%s' is not authorized to access this route", user.UserType))
		}
	}
}
