package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core/profile"
)

// adminMiddleware loads the viewer's profile and only lets admins through.
// A viewer with no profile row cannot be an admin.
func adminMiddleware(svc *profile.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			p, err := getContextProfile(ctx, svc)
			if err != nil {
				if errors.Cause(err) == profile.ErrNotFound {
					return errHttpForbidden
				}
				return errors.Wrap(err, "getting context profile")
			}
			if p.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
