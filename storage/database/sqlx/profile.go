package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/gradnet/backend/core/profile"
)

type profileRow struct {
	ID              string      `db:"id"`
	Email           string      `db:"email"`
	FullName        string      `db:"full_name"`
	GraduationYear  null.Int    `db:"graduation_year"`
	Degree          null.String `db:"degree"`
	Major           null.String `db:"major"`
	CurrentCompany  null.String `db:"current_company"`
	CurrentPosition null.String `db:"current_position"`
	Location        null.String `db:"location"`
	Bio             null.String `db:"bio"`
	LinkedinURL     null.String `db:"linkedin_url"`
	IsMentor        bool        `db:"is_mentor"`
	IsAdmin         bool        `db:"is_admin"`
	PictureURL      null.String `db:"picture_url"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

func (r profileRow) toDomain() profile.Profile {
	p := profile.Profile{
		ID:              r.ID,
		Email:           r.Email,
		FullName:        r.FullName,
		Degree:          r.Degree.String,
		Major:           r.Major.String,
		CurrentCompany:  r.CurrentCompany.String,
		CurrentPosition: r.CurrentPosition.String,
		Location:        r.Location.String,
		Bio:             r.Bio.String,
		LinkedinURL:     r.LinkedinURL.String,
		IsMentor:        r.IsMentor,
		IsAdmin:         r.IsAdmin,
		PictureURL:      r.PictureURL.String,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
	if r.GraduationYear.Valid {
		year := int(r.GraduationYear.Int)
		p.GraduationYear = &year
	}
	return p
}

func fromDomainProfile(p profile.Profile) profileRow {
	row := profileRow{
		ID:              p.ID,
		Email:           p.Email,
		FullName:        p.FullName,
		Degree:          null.NewString(p.Degree, p.Degree != ""),
		Major:           null.NewString(p.Major, p.Major != ""),
		CurrentCompany:  null.NewString(p.CurrentCompany, p.CurrentCompany != ""),
		CurrentPosition: null.NewString(p.CurrentPosition, p.CurrentPosition != ""),
		Location:        null.NewString(p.Location, p.Location != ""),
		Bio:             null.NewString(p.Bio, p.Bio != ""),
		LinkedinURL:     null.NewString(p.LinkedinURL, p.LinkedinURL != ""),
		IsMentor:        p.IsMentor,
		IsAdmin:         p.IsAdmin,
		PictureURL:      null.NewString(p.PictureURL, p.PictureURL != ""),
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
	if p.GraduationYear != nil {
		row.GraduationYear = null.IntFrom(*p.GraduationYear)
	}
	return row
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to profile.ErrNotFound
func (repo profileRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return profile.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo profileRepository) UpsertProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	row := fromDomainProfile(p)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO profile (
			id, email, full_name, graduation_year, degree, major, current_company,
			current_position, location, bio, linkedin_url, is_mentor, is_admin,
			picture_url, created_at, updated_at
		) VALUES (
			:id, :email, :full_name, :graduation_year, :degree, :major, :current_company,
			:current_position, :location, :bio, :linkedin_url, :is_mentor, :is_admin,
			:picture_url, :created_at, :updated_at
		)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			graduation_year = EXCLUDED.graduation_year,
			degree = EXCLUDED.degree,
			major = EXCLUDED.major,
			current_company = EXCLUDED.current_company,
			current_position = EXCLUDED.current_position,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			linkedin_url = EXCLUDED.linkedin_url,
			is_mentor = EXCLUDED.is_mentor,
			picture_url = EXCLUDED.picture_url,
			updated_at = EXCLUDED.updated_at`,
		row,
	)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "upserting profile")
	}
	return repo.GetProfile(ctx, p.ID)
}

func (repo profileRepository) GetProfile(ctx context.Context, id string) (profile.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return profile.Profile{}, profile.ErrNotFound
	}
	var row profileRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM profile WHERE id = $1`, id); err != nil {
		return profile.Profile{}, repo.trapNoRowsErr(err, "finding profile by ID")
	}
	return row.toDomain(), nil
}

func (repo profileRepository) QueryAllProfiles(ctx context.Context) ([]profile.Profile, error) {
	var rows []profileRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM profile ORDER BY full_name ASC`); err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}
	return toDomainProfiles(rows), nil
}

func (repo profileRepository) QueryRecentProfiles(ctx context.Context, limit int) ([]profile.Profile, error) {
	var rows []profileRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM profile ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent profiles")
	}
	return toDomainProfiles(rows), nil
}

func (repo profileRepository) CountProfiles(ctx context.Context, mentorsOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM profile`
	if mentorsOnly {
		query += ` WHERE is_mentor`
	}
	var count int
	if err := repo.db.GetContext(ctx, &count, query); err != nil {
		return 0, errors.Wrap(err, "counting profiles")
	}
	return count, nil
}

func (repo profileRepository) SetProfilePicture(ctx context.Context, id, url string) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE profile SET picture_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return errors.Wrap(err, "setting profile picture")
	}
	return repo.trapNoAffectedRows(res, profile.ErrNotFound)
}

func (repo profileRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE profile SET is_admin = $2, updated_at = NOW() WHERE id = $1`, id, isAdmin)
	if err != nil {
		return errors.Wrap(err, "setting admin flag")
	}
	return repo.trapNoAffectedRows(res, profile.ErrNotFound)
}

func (repo profileRepository) trapNoAffectedRows(res sql.Result, notFound error) error {
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking affected rows")
	}
	if cnt == 0 {
		return notFound
	}
	return nil
}

func toDomainProfiles(rows []profileRow) []profile.Profile {
	profiles := make([]profile.Profile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.toDomain())
	}
	return profiles
}
