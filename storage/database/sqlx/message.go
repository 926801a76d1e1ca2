package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core/message"
)

// messageRow carries the message columns plus both parties' display names
// joined in from their profiles; the sender/recipient display-name lookup is
// done relationally here, not by a separate profile fetch.
type messageRow struct {
	ID            string    `db:"id"`
	SenderID      string    `db:"sender_id"`
	RecipientID   string    `db:"recipient_id"`
	Subject       string    `db:"subject"`
	Content       string    `db:"content"`
	IsRead        bool      `db:"is_read"`
	CreatedAt     time.Time `db:"created_at"`
	SenderName    string    `db:"sender_name"`
	RecipientName string    `db:"recipient_name"`
}

func (r messageRow) toDomain() message.Message {
	return message.Message{
		ID:          r.ID,
		SenderID:    r.SenderID,
		RecipientID: r.RecipientID,
		Subject:     r.Subject,
		Content:     r.Content,
		IsRead:      r.IsRead,
		CreatedAt:   r.CreatedAt.UTC(),
		Sender:      message.Party{ID: r.SenderID, FullName: r.SenderName},
		Recipient:   message.Party{ID: r.RecipientID, FullName: r.RecipientName},
	}
}

const messageSelect = `
	SELECT m.id, m.sender_id, m.recipient_id, m.subject, m.content, m.is_read, m.created_at,
	       s.full_name AS sender_name, r.full_name AS recipient_name
	FROM message m
	JOIN profile s ON s.id = m.sender_id
	JOIN profile r ON r.id = m.recipient_id`

type messageRepository struct {
	db *sqlx.DB
}

var _ message.Repository = (*messageRepository)(nil) // interface compliance check

func NewMessageRepository(db *sqlx.DB) *messageRepository {
	return &messageRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to message.ErrNotFound
func (repo messageRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return message.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo messageRepository) CreateMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	msg.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO message (id, sender_id, recipient_id, subject, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.Subject, msg.Content, msg.IsRead, msg.CreatedAt.UTC(),
	)
	if err != nil {
		return message.Message{}, errors.Wrap(err, "inserting message")
	}
	return msg, nil
}

func (repo messageRepository) QueryUserMessages(ctx context.Context, userID string) ([]message.Message, error) {
	var rows []messageRow
	err := repo.db.SelectContext(ctx, &rows,
		messageSelect+`
		WHERE m.sender_id = $1 OR m.recipient_id = $1
		ORDER BY m.created_at DESC, m.id DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying user messages")
	}
	msgs := make([]message.Message, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, r.toDomain())
	}
	return msgs, nil
}

func (repo messageRepository) GetMessage(ctx context.Context, id string) (message.Message, error) {
	if _, err := uuid.Parse(id); err != nil {
		return message.Message{}, message.ErrNotFound
	}
	var row messageRow
	if err := repo.db.GetContext(ctx, &row, messageSelect+` WHERE m.id = $1`, id); err != nil {
		return message.Message{}, repo.trapNoRowsErr(err, "finding message by ID")
	}
	return row.toDomain(), nil
}

func (repo messageRepository) MarkMessageRead(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `UPDATE message SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "marking message read")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking affected rows")
	}
	if cnt == 0 {
		return message.ErrNotFound
	}
	return nil
}

func (repo messageRepository) CountMessages(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM message`); err != nil {
		return 0, errors.Wrap(err, "counting messages")
	}
	return count, nil
}

func (repo messageRepository) CountUnreadMessages(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM message WHERE recipient_id = $1 AND NOT is_read`, recipientID)
	if err != nil {
		return 0, errors.Wrap(err, "counting unread messages")
	}
	return count, nil
}
