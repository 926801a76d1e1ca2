package message

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/gradnet/backend/core"
	"github.com/gradnet/backend/core/profile"
)

var (
	// errors
	ErrNotFound         = errors.New("message not found")
	ErrRecipientIsSelf  = errors.New("recipient cannot be yourself")
	ErrRecipientUnknown = errors.New("recipient not found")
)

type (
	Repository interface {
		CreateMessage(ctx context.Context, msg Message) (Message, error)
		// QueryUserMessages returns all messages where the user is sender or
		// recipient, newest first, with both parties' display names populated.
		QueryUserMessages(ctx context.Context, userID string) ([]Message, error)
		GetMessage(ctx context.Context, id string) (Message, error)
		MarkMessageRead(ctx context.Context, id string) error
		CountMessages(ctx context.Context) (int, error)
		CountUnreadMessages(ctx context.Context, recipientID string) (int, error)
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

// Send delivers a new message from the sender to nm.RecipientID.
// Self-addressed messages are rejected here so a degenerate one-party
// conversation can never be formed downstream.
func (svc *Service) Send(ctx context.Context, sender profile.Profile, nm NewMessage) (Message, error) {
	if nm.RecipientID == sender.ID {
		return Message{}, core.NewValidationError(ErrRecipientIsSelf,
			core.FieldError{Field: "recipient_id", Error: ErrRecipientIsSelf.Error()})
	}
	recipient, err := svc.profiles.GetByID(ctx, nm.RecipientID)
	if err != nil {
		if err == profile.ErrNotFound {
			return Message{}, core.NewValidationError(ErrRecipientUnknown,
				core.FieldError{Field: "recipient_id", Error: ErrRecipientUnknown.Error()})
		}
		return Message{}, err
	}

	msg := Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Subject:     nm.Subject,
		Content:     nm.Content,
		IsRead:      false,
		CreatedAt:   time.Now().UTC(),
		Sender:      Party{ID: sender.ID, FullName: sender.FullName},
		Recipient:   Party{ID: recipient.ID, FullName: recipient.FullName},
	}
	msg, err = svc.repo.CreateMessage(ctx, msg)
	if err != nil {
		return Message{}, err
	}

	svc.notifyRecipient(recipient, sender, msg)
	return msg, nil
}

// notifyRecipient sends a best-effort "you have a new message" email.
func (svc *Service) notifyRecipient(recipient, sender profile.Profile, msg Message) {
	if svc.mailSvc == nil || recipient.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: recipient.FullName, Address: recipient.Email}},
		Subject:      "New message from " + sender.FullName,
		TemplateName: "new_message",
		TemplateData: struct {
			RecipientName string
			SenderName    string
			Subject       string
		}{recipient.FullName, sender.FullName, msg.Subject},
	})
}

// QueryForUser returns the flat message list visible to the user.
func (svc *Service) QueryForUser(ctx context.Context, userID string) ([]Message, error) {
	return svc.repo.QueryUserMessages(ctx, userID)
}

// Conversations aggregates the user's messages into per-counterpart threads.
func (svc *Service) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
	msgs, err := svc.repo.QueryUserMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(msgs, userID), nil
}

// MarkRead flips a message's read flag. Only the recipient may do so and the
// operation is idempotent: marking an already-read message is a no-op.
func (svc *Service) MarkRead(ctx context.Context, viewerID, msgID string) error {
	msg, err := svc.repo.GetMessage(ctx, msgID)
	if err != nil {
		return err
	}
	if msg.RecipientID != viewerID {
		return ErrNotFound // do not reveal other users' messages
	}
	if msg.IsRead {
		return nil
	}
	return svc.repo.MarkMessageRead(ctx, msgID)
}

func (svc *Service) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return svc.repo.CountUnreadMessages(ctx, recipientID)
}
