package message

import (
	"testing"
	"time"
)

func TestAggregate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	viewer := "viewer"

	alice := Party{ID: "alice", FullName: "Alice A"}
	bob := Party{ID: "bob", FullName: "Bob B"}
	me := Party{ID: viewer, FullName: "Viewer V"}

	msg := func(id string, from, to Party, at time.Time, read bool) Message {
		return Message{
			ID:          id,
			SenderID:    from.ID,
			RecipientID: to.ID,
			Subject:     "hey",
			Content:     "hello",
			IsRead:      read,
			CreatedAt:   at,
			Sender:      from,
			Recipient:   to,
		}
	}

	t.Run("no messages", func(t *testing.T) {
		convs := Aggregate(nil, viewer)
		if len(convs) != 0 {
			t.Errorf("Aggregate() = %d conversations, want 0", len(convs))
		}
	})

	t.Run("partitions by counterpart", func(t *testing.T) {
		msgs := []Message{
			msg("m1", alice, me, now, false),
			msg("m2", me, alice, now.Add(time.Minute), false),
			msg("m3", bob, me, now.Add(2*time.Minute), true),
		}
		convs := Aggregate(msgs, viewer)
		if len(convs) != 2 {
			t.Fatalf("Aggregate() = %d conversations, want 2", len(convs))
		}
		// bob's thread is newer and comes first
		if convs[0].CounterpartID != "bob" || convs[1].CounterpartID != "alice" {
			t.Errorf("conversation order = [%s %s], want [bob alice]", convs[0].CounterpartID, convs[1].CounterpartID)
		}
		if got := len(convs[1].Messages); got != 2 {
			t.Errorf("alice thread has %d messages, want 2", got)
		}
	})

	t.Run("messages newest first and latest set", func(t *testing.T) {
		msgs := []Message{
			msg("m1", alice, me, now, false),
			msg("m3", alice, me, now.Add(2*time.Minute), false),
			msg("m2", me, alice, now.Add(time.Minute), false),
		}
		convs := Aggregate(msgs, viewer)
		if len(convs) != 1 {
			t.Fatalf("Aggregate() = %d conversations, want 1", len(convs))
		}
		conv := convs[0]
		wantOrder := []string{"m3", "m2", "m1"}
		for i, want := range wantOrder {
			if conv.Messages[i].ID != want {
				t.Errorf("Messages[%d].ID = %s, want %s", i, conv.Messages[i].ID, want)
			}
		}
		if conv.Latest.ID != "m3" {
			t.Errorf("Latest.ID = %s, want m3", conv.Latest.ID)
		}
		if conv.Counterpart != alice {
			t.Errorf("Counterpart = %+v, want %+v", conv.Counterpart, alice)
		}
	})

	t.Run("unread counts only viewer-received unread", func(t *testing.T) {
		msgs := []Message{
			msg("m1", alice, me, now, false),               // counts
			msg("m2", alice, me, now.Add(time.Minute), true), // read
			msg("m3", me, alice, now.Add(2*time.Minute), false), // sent by viewer
		}
		convs := Aggregate(msgs, viewer)
		if len(convs) != 1 {
			t.Fatalf("Aggregate() = %d conversations, want 1", len(convs))
		}
		if convs[0].UnreadCount != 1 {
			t.Errorf("UnreadCount = %d, want 1", convs[0].UnreadCount)
		}
	})

	t.Run("timestamp ties broken by ID", func(t *testing.T) {
		msgs := []Message{
			msg("a", alice, me, now, false),
			msg("b", alice, me, now, false),
			msg("x", bob, me, now, false),
			msg("y", bob, me, now, false),
		}
		convs := Aggregate(msgs, viewer)
		if len(convs) != 2 {
			t.Fatalf("Aggregate() = %d conversations, want 2", len(convs))
		}
		// greater ID wins a tie, both within and between groups
		if convs[0].CounterpartID != "bob" {
			t.Errorf("conversations[0].CounterpartID = %s, want bob", convs[0].CounterpartID)
		}
		if convs[0].Latest.ID != "y" {
			t.Errorf("conversations[0].Latest.ID = %s, want y", convs[0].Latest.ID)
		}
		if convs[1].Messages[0].ID != "b" {
			t.Errorf("alice thread Messages[0].ID = %s, want b", convs[1].Messages[0].ID)
		}
	})

	t.Run("input not mutated", func(t *testing.T) {
		msgs := []Message{
			msg("m2", alice, me, now.Add(time.Minute), false),
			msg("m1", alice, me, now, false),
		}
		_ = Aggregate(msgs, viewer)
		if msgs[0].ID != "m2" || msgs[1].ID != "m1" {
			t.Errorf("input order changed: [%s %s]", msgs[0].ID, msgs[1].ID)
		}
	})
}
