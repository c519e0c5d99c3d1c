package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-address-api/internal/api/middleware"
	"github.com/usermgmt/user-address-api/internal/core/access"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. Its
// presence proves the middleware ran; a handler reached without it means a
// route was wired without authentication, which reads as 401 to the caller.
func ctxPrincipal(c echo.Context) (access.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(access.Principal)
	if !ok {
		return access.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
