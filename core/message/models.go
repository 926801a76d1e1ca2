package message

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/gradnet/backend/core"
)

// Party identifies one participant of a message, with the display name
// joined in from their profile.
type Party struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Message is immutable once sent except for IsRead, which transitions
// false -> true exactly once, set by the recipient.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"` // UTC

	Sender    Party `json:"sender"`
	Recipient Party `json:"recipient"`
}

// NewMessage contains information needed to send a Message.
type NewMessage struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

func (nm *NewMessage) Validate(validate *validator.Validate, _ ut.Translator) error {
	nm.RecipientID = core.CleanString(nm.RecipientID)
	nm.Subject = core.CleanString(nm.Subject)
	nm.Content = core.CleanString(nm.Content)
	return validate.Struct(nm)
}

// Conversation is the derived, non-persisted grouping of all messages
// between a viewer and one counterpart. It is recomputed from the flat
// message list on every read and never cached.
type Conversation struct {
	CounterpartID string    `json:"counterpart_id"`
	Counterpart   Party     `json:"counterpart"`
	Messages      []Message `json:"messages"`     // newest first
	Latest        Message   `json:"latest"`       // == Messages[0]
	UnreadCount   int       `json:"unread_count"` // recipient == viewer && !is_read
}
