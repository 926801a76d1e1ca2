package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core/announcement"
	"github.com/gradnet/backend/core/message"
	"github.com/gradnet/backend/core/profile"
)

const dashboardAnnouncementLimit = 3

type dashboardApi struct {
	profileSvc      *profile.Service
	messageSvc      *message.Service
	announcementSvc *announcement.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := dashboardApi{
		profileSvc:      opts.ProfileSvc,
		messageSvc:      opts.MessageSvc,
		announcementSvc: opts.AnnouncementSvc,
	}

	g.GET("/dashboard", api.retrieve, jwt)
}

type DashboardResponse struct {
	Profile       profile.Profile             `json:"profile"`
	Announcements []announcement.Announcement `json:"announcements"`
	UnreadCount   int                         `json:"unread_count"`
}

func (api *dashboardApi) retrieve(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting context profile")
	}

	anns, err := api.announcementSvc.QueryRecent(ctx.Request().Context(), dashboardAnnouncementLimit)
	if err != nil {
		return errors.Wrap(err, "querying recent announcements")
	}
	if anns == nil {
		anns = []announcement.Announcement{}
	}

	unread, err := api.messageSvc.CountUnread(ctx.Request().Context(), p.ID)
	if err != nil {
		return errors.Wrap(err, "counting unread messages")
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		Profile:       p,
		Announcements: anns,
		UnreadCount:   unread,
	})
}
