package dummydb

import (
	"sync"

	"github.com/gradnet/backend/core/announcement"
	"github.com/gradnet/backend/core/message"
	"github.com/gradnet/backend/core/profile"
)

// DB is an in-memory stand-in for the real database, used in tests.
type (
	DB struct {
		profile      *profileTable
		message      *messageTable
		announcement *announcementTable
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile
	}

	messageTable struct {
		sync.RWMutex
		table map[string]*message.Message
	}

	announcementTable struct {
		sync.RWMutex
		table map[string]*announcement.Announcement
	}
)

func Open() (*DB, error) {
	db := &DB{
		profile:      &profileTable{table: make(map[string]*profile.Profile)},
		message:      &messageTable{table: make(map[string]*message.Message)},
		announcement: &announcementTable{table: make(map[string]*announcement.Announcement)},
	}
	return db, nil
}
