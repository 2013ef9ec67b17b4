package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communiteq/time-registration/internal/core/domain"
	"github.com/communiteq/time-registration/internal/core/ports"
)

// RequireTimeTracking lets a request through only when the authenticated
// user holds the may-track-time capability. It must run after Auth.
func RequireTimeTracking(directory ports.PlatformDirectory, authz ports.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := directory.FindUser(c.Request().Context(), userID)
			if errors.Is(err, domain.ErrUserNotFound) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if err != nil {
				return err
			}
			if !authz.CanTrackTime(user) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
