package announcement

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/gradnet/backend/core"
	"github.com/gradnet/backend/core/profile"
)

var ErrNotFound = errors.New("announcement not found")

type (
	Repository interface {
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		// QueryAllAnnouncements returns announcements newest first with the
		// author's display name populated. limit <= 0 means no limit.
		QueryAllAnnouncements(ctx context.Context, limit int) ([]Announcement, error)
		GetAnnouncement(ctx context.Context, id string) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id string) error
		CountAnnouncements(ctx context.Context) (int, error)
	}

	Service struct {
		repo     Repository
		profiles *profile.Service
		mailSvc  core.EmailService
	}
)

func NewService(repo Repository, profiles *profile.Service, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, profiles: profiles, mailSvc: mailSvc}
}

// Create posts a new announcement authored by the given admin profile and
// notifies the alumni roster by email, best effort.
func (svc *Service) Create(ctx context.Context, author profile.Profile, na NewAnnouncement) (Announcement, error) {
	now := time.Now().UTC()
	ann := Announcement{
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		Title:      na.Title,
		Content:    na.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	ann, err := svc.repo.CreateAnnouncement(ctx, ann)
	if err != nil {
		return Announcement{}, err
	}

	svc.notifyAll(ctx, ann)
	return ann, nil
}

// notifyAll emails the whole roster about a new announcement, Bcc'd.
func (svc *Service) notifyAll(ctx context.Context, ann Announcement) {
	if svc.mailSvc == nil {
		return
	}
	profiles, err := svc.profiles.QueryAll(ctx)
	if err != nil {
		return // the announcement itself is already posted
	}
	bcc := make([]mail.Address, 0, len(profiles))
	for _, p := range profiles {
		if p.Email == "" || p.ID == ann.AuthorID {
			continue
		}
		bcc = append(bcc, mail.Address{Name: p.FullName, Address: p.Email})
	}
	if len(bcc) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{core.Conf.DefaultFromEmail},
		Bcc:          bcc,
		Subject:      "New announcement: " + ann.Title,
		TemplateName: "new_announcement",
		TemplateData: struct {
			Title      string
			Content    string
			AuthorName string
		}{ann.Title, ann.Content, ann.AuthorName},
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements(ctx, 0)
}

// QueryRecent returns the latest `limit` announcements.
func (svc *Service) QueryRecent(ctx context.Context, limit int) ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements(ctx, limit)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Announcement, error) {
	return svc.repo.GetAnnouncement(ctx, id)
}

// Update edits an existing announcement and refreshes its update timestamp.
func (svc *Service) Update(ctx context.Context, id string, ua UpdateAnnouncement) (Announcement, error) {
	ann, err := svc.repo.GetAnnouncement(ctx, id)
	if err != nil {
		return Announcement{}, err
	}
	ann.Title = ua.Title
	ann.Content = ua.Content
	ann.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAnnouncement(ctx, ann)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteAnnouncement(ctx, id)
}
