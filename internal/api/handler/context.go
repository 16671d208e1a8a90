package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any handler logic: a zero user id or an empty
// role means the middleware did not run or the token carried no identity.
func ctxClaims(c echo.Context) (userID uint, role string, err error) {
	userID, _ = c.Get("user_id").(uint)
	role, _ = c.Get("role").(string)
	if userID == 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
