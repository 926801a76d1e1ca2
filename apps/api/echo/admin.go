package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core/admin"
	"github.com/gradnet/backend/core/profile"
)

type adminApi struct {
	svc        *admin.Service
	profileSvc *profile.Service
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := adminApi{
		svc:        opts.AdminSvc,
		profileSvc: opts.ProfileSvc,
	}

	ag := g.Group("/admin", jwt, adminMiddleware(api.profileSvc))
	ag.GET("/stats", api.stats)
}

func (api *adminApi) stats(ctx echo.Context) error {
	overview, err := api.svc.GetOverview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "gathering admin overview")
	}
	return ctx.JSON(http.StatusOK, overview)
}
