package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/gradnet/backend/core/announcement"
)

type announcementRepository struct {
	db       *announcementTable
	profiles *profileTable
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{db: db.announcement, profiles: db.profile}
}

func (repo *announcementRepository) withAuthorName(ann announcement.Announcement) announcement.Announcement {
	repo.profiles.RLock()
	defer repo.profiles.RUnlock()

	if p, ok := repo.profiles.table[ann.AuthorID]; ok {
		ann.AuthorName = p.FullName
	}
	return ann
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ann.ID = uuid.New().String()
	stored := ann
	repo.db.table[ann.ID] = &stored
	return repo.withAuthorName(ann), nil
}

func (repo *announcementRepository) QueryAllAnnouncements(_ context.Context, limit int) ([]announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	anns := make([]announcement.Announcement, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		anns = append(anns, repo.withAuthorName(*a))
	}
	sort.Slice(anns, func(i, j int) bool {
		if !anns[i].CreatedAt.Equal(anns[j].CreatedAt) {
			return anns[i].CreatedAt.After(anns[j].CreatedAt)
		}
		return anns[i].ID > anns[j].ID
	})
	if limit > 0 && len(anns) > limit {
		anns = anns[:limit]
	}
	return anns, nil
}

func (repo *announcementRepository) GetAnnouncement(_ context.Context, id string) (announcement.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return repo.withAuthorName(*a), nil
	}
	return announcement.Announcement{}, announcement.ErrNotFound
}

func (repo *announcementRepository) UpdateAnnouncement(_ context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored, ok := repo.db.table[ann.ID]
	if !ok {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	stored.Title = ann.Title
	stored.Content = ann.Content
	stored.UpdatedAt = ann.UpdatedAt
	return repo.withAuthorName(*stored), nil
}

func (repo *announcementRepository) DeleteAnnouncement(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return announcement.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *announcementRepository) CountAnnouncements(_ context.Context) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return len(repo.db.table), nil
}
