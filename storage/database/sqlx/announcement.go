package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core/announcement"
)

type announcementRow struct {
	ID         string    `db:"id"`
	AuthorID   string    `db:"author_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
	AuthorName string    `db:"author_name"`
}

func (r announcementRow) toDomain() announcement.Announcement {
	return announcement.Announcement{
		ID:         r.ID,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		Title:      r.Title,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

const announcementSelect = `
	SELECT a.id, a.author_id, a.title, a.content, a.created_at, a.updated_at,
	       p.full_name AS author_name
	FROM announcement a
	JOIN profile p ON p.id = a.author_id`

type announcementRepository struct {
	db *sqlx.DB
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) *announcementRepository {
	return &announcementRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to announcement.ErrNotFound
func (repo announcementRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return announcement.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo announcementRepository) CreateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	ann.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO announcement (id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ann.ID, ann.AuthorID, ann.Title, ann.Content, ann.CreatedAt.UTC(), ann.UpdatedAt.UTC(),
	)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	return ann, nil
}

func (repo announcementRepository) QueryAllAnnouncements(ctx context.Context, limit int) ([]announcement.Announcement, error) {
	query := announcementSelect + ` ORDER BY a.created_at DESC, a.id DESC`
	args := make([]interface{}, 0, 1)
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	var rows []announcementRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	anns := make([]announcement.Announcement, 0, len(rows))
	for _, r := range rows {
		anns = append(anns, r.toDomain())
	}
	return anns, nil
}

func (repo announcementRepository) GetAnnouncement(ctx context.Context, id string) (announcement.Announcement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	var row announcementRow
	if err := repo.db.GetContext(ctx, &row, announcementSelect+` WHERE a.id = $1`, id); err != nil {
		return announcement.Announcement{}, repo.trapNoRowsErr(err, "finding announcement by ID")
	}
	return row.toDomain(), nil
}

func (repo announcementRepository) UpdateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE announcement SET title = $2, content = $3, updated_at = $4 WHERE id = $1`,
		ann.ID, ann.Title, ann.Content, ann.UpdatedAt.UTC(),
	)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "checking affected rows")
	}
	if cnt == 0 {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	return ann, nil
}

func (repo announcementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return announcement.ErrNotFound
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM announcement WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking affected rows")
	}
	if cnt == 0 {
		return announcement.ErrNotFound
	}
	return nil
}

func (repo announcementRepository) CountAnnouncements(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM announcement`); err != nil {
		return 0, errors.Wrap(err, "counting announcements")
	}
	return count, nil
}
