package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/gradnet/backend/core/message"
)

type messageRepository struct {
	db       *messageTable
	profiles *profileTable
}

var _ message.Repository = (*messageRepository)(nil) // interface compliance check

func NewMessageRepository(db *DB) message.Repository {
	return &messageRepository{db: db.message, profiles: db.profile}
}

// withNames populates both parties' display names from the profile table,
// mimicking the relational join the real repository performs.
func (repo *messageRepository) withNames(msg message.Message) message.Message {
	repo.profiles.RLock()
	defer repo.profiles.RUnlock()

	msg.Sender = message.Party{ID: msg.SenderID}
	msg.Recipient = message.Party{ID: msg.RecipientID}
	if p, ok := repo.profiles.table[msg.SenderID]; ok {
		msg.Sender.FullName = p.FullName
	}
	if p, ok := repo.profiles.table[msg.RecipientID]; ok {
		msg.Recipient.FullName = p.FullName
	}
	return msg
}

func (repo *messageRepository) CreateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	msg.ID = uuid.New().String()
	stored := msg
	repo.db.table[msg.ID] = &stored
	return repo.withNames(msg), nil
}

func (repo *messageRepository) QueryUserMessages(_ context.Context, userID string) ([]message.Message, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	msgs := make([]message.Message, 0)
	for _, m := range repo.db.table {
		if m.SenderID == userID || m.RecipientID == userID {
			msgs = append(msgs, repo.withNames(*m))
		}
	}
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
		}
		return msgs[i].ID > msgs[j].ID
	})
	return msgs, nil
}

func (repo *messageRepository) GetMessage(_ context.Context, id string) (message.Message, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return repo.withNames(*m), nil
	}
	return message.Message{}, message.ErrNotFound
}

func (repo *messageRepository) MarkMessageRead(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	m, ok := repo.db.table[id]
	if !ok {
		return message.ErrNotFound
	}
	m.IsRead = true
	return nil
}

func (repo *messageRepository) CountMessages(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.table), nil
}

func (repo *messageRepository) CountUnreadMessages(_ context.Context, recipientID string) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, m := range repo.db.table {
		if m.RecipientID == recipientID && !m.IsRead {
			count++
		}
	}
	return count, nil
}
