package handler

import (
	"github.com/labstack/echo/v4"

	"agrimarket/internal/model"
)

// CurrentUserKey is the echo context key the auth middleware stores the
// resolved user under.
const CurrentUserKey = "currentUser"

// CurrentUser returns the request's resolved user, or nil on public routes.
func CurrentUser(c echo.Context) *model.AuthUser {
	user, _ := c.Get(CurrentUserKey).(*model.AuthUser)
	return user
}
