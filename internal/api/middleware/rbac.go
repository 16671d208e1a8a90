package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/authcore/identity-api/internal/api/metrics"
	"github.com/authcore/identity-api/internal/core/domain"
)

// RequireRole enforces role-based access control by exact string match.
// There is no role hierarchy: an endpoint guarded with RequireRole("admin")
// rejects every other role, viewer included.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.AuthDenialsTotal.WithLabelValues("forbidden").Inc()
				// Rendered as 403 by the central error handler.
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
