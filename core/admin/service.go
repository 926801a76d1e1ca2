package admin

import (
	"context"

	"github.com/gradnet/backend/core/announcement"
	"github.com/gradnet/backend/core/message"
	"github.com/gradnet/backend/core/profile"
)

const recentLimit = 10

// Overview is everything the admin dashboard renders: counts, ratios and
// recent-rows samples.
type Overview struct {
	Stats               Stats                       `json:"stats"`
	RecentUsers         []profile.Profile           `json:"recent_users"`
	RecentAnnouncements []announcement.Announcement `json:"recent_announcements"`
}

type Service struct {
	profiles      profile.Repository
	messages      message.Repository
	announcements announcement.Repository
}

func NewService(profiles profile.Repository, messages message.Repository, announcements announcement.Repository) *Service {
	return &Service{profiles: profiles, messages: messages, announcements: announcements}
}

// GetOverview gathers the raw counts and recent rows and derives the
// dashboard statistics from them.
func (svc *Service) GetOverview(ctx context.Context) (Overview, error) {
	var t Totals
	var err error

	if t.TotalUsers, err = svc.profiles.CountProfiles(ctx, false); err != nil {
		return Overview{}, err
	}
	if t.MentorCount, err = svc.profiles.CountProfiles(ctx, true); err != nil {
		return Overview{}, err
	}
	if t.TotalMessages, err = svc.messages.CountMessages(ctx); err != nil {
		return Overview{}, err
	}
	if t.TotalAnnouncements, err = svc.announcements.CountAnnouncements(ctx); err != nil {
		return Overview{}, err
	}

	recentUsers, err := svc.profiles.QueryRecentProfiles(ctx, recentLimit)
	if err != nil {
		return Overview{}, err
	}
	recentAnns, err := svc.announcements.QueryAllAnnouncements(ctx, recentLimit)
	if err != nil {
		return Overview{}, err
	}

	if recentUsers == nil {
		recentUsers = []profile.Profile{}
	}
	if recentAnns == nil {
		recentAnns = []announcement.Announcement{}
	}

	return Overview{
		Stats:               ComputeStats(t),
		RecentUsers:         recentUsers,
		RecentAnnouncements: recentAnns,
	}, nil
}
