package message

import "sort"

// Aggregate groups the viewer's flat message list into per-counterpart
// conversations. For each message the counterpart is the other party
// relative to the viewer; messages within a group are ordered newest first,
// the group's Latest is its newest message, and UnreadCount counts messages
// addressed to the viewer that are still unread. Groups are ordered by their
// newest message, descending. Timestamp ties are broken by message ID so the
// result is deterministic.
//
// Aggregate is a pure function: it never mutates its input and has no side
// effects. Marking a message read is a separate write operation.
func Aggregate(msgs []Message, viewerID string) []Conversation {
	groups := make(map[string][]Message)
	for _, m := range msgs {
		cp := m.SenderID
		if cp == viewerID {
			cp = m.RecipientID
		}
		groups[cp] = append(groups[cp], m)
	}

	convs := make([]Conversation, 0, len(groups))
	for cp, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.After(group[j].CreatedAt)
			}
			return group[i].ID > group[j].ID
		})

		latest := group[0]
		counterpart := latest.Sender
		if latest.SenderID == viewerID {
			counterpart = latest.Recipient
		}

		var unread int
		for _, m := range group {
			if m.RecipientID == viewerID && !m.IsRead {
				unread++
			}
		}

		convs = append(convs, Conversation{
			CounterpartID: cp,
			Counterpart:   counterpart,
			Messages:      group,
			Latest:        latest,
			UnreadCount:   unread,
		})
	}

	sort.Slice(convs, func(i, j int) bool {
		if !convs[i].Latest.CreatedAt.Equal(convs[j].Latest.CreatedAt) {
			return convs[i].Latest.CreatedAt.After(convs[j].Latest.CreatedAt)
		}
		return convs[i].Latest.ID > convs[j].Latest.ID
	})
	return convs
}
