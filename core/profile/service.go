package profile

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("profile not found")

type (
	Repository interface {
		// UpsertProfile inserts the profile if no row with its ID exists,
		// otherwise updates the existing row.
		UpsertProfile(ctx context.Context, p Profile) (Profile, error)
		GetProfile(ctx context.Context, id string) (Profile, error)
		// QueryAllProfiles returns every profile ordered by full name.
		QueryAllProfiles(ctx context.Context) ([]Profile, error)
		// QueryRecentProfiles returns the latest profiles by creation time.
		QueryRecentProfiles(ctx context.Context, limit int) ([]Profile, error)
		CountProfiles(ctx context.Context, mentorsOnly bool) (int, error)
		SetProfilePicture(ctx context.Context, id, url string) error
		SetAdmin(ctx context.Context, id string, isAdmin bool) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert creates or updates the viewer's profile. The email is taken from the
// authenticated identity, never from the submitted form.
func (svc *Service) Upsert(ctx context.Context, id, email string, up UpsertProfile) (Profile, error) {
	now := time.Now().UTC()
	prof := Profile{
		ID:              id,
		Email:           email,
		FullName:        up.FullName,
		GraduationYear:  up.Year(),
		Degree:          up.Degree,
		Major:           up.Major,
		CurrentCompany:  up.CurrentCompany,
		CurrentPosition: up.CurrentPosition,
		Location:        up.Location,
		Bio:             up.Bio,
		LinkedinURL:     up.LinkedinURL,
		IsMentor:        up.IsMentor,
		UpdatedAt:       now,
	}
	if existing, err := svc.repo.GetProfile(ctx, id); err == nil {
		prof.IsAdmin = existing.IsAdmin // the flag survives upserts; only ops can change it
		prof.PictureURL = existing.PictureURL
		prof.CreatedAt = existing.CreatedAt
	} else if err != ErrNotFound {
		return Profile{}, err
	} else {
		prof.CreatedAt = now
	}
	return svc.repo.UpsertProfile(ctx, prof)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return svc.repo.GetProfile(ctx, id)
}

// Directory returns the filtered alumni roster for the viewer, plus the
// distinct graduation years and full roster size for the filter controls.
func (svc *Service) Directory(ctx context.Context, viewerID string, filter DirectoryFilter) ([]Profile, []int, int, error) {
	profiles, err := svc.repo.QueryAllProfiles(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	filtered := FilterDirectory(profiles, viewerID, filter)
	return filtered, GraduationYears(profiles), len(profiles), nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Profile, error) {
	return svc.repo.QueryAllProfiles(ctx)
}

func (svc *Service) SetPicture(ctx context.Context, id, url string) error {
	return svc.repo.SetProfilePicture(ctx, id, url)
}
