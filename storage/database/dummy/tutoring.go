package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/minerva/core/tutoring"
)

type sessionRepository struct {
	db *sessionTable
}

var _ tutoring.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) *sessionRepository {
	return &sessionRepository{db: db.tutoring}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, sess tutoring.Session) (tutoring.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sess.ID = uuid.New().String()
	repo.db.table[sess.ID] = &sess
	return sess, nil
}

func (repo *sessionRepository) QuerySessionsByUser(ctx context.Context, userID string) ([]tutoring.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sessions := make([]tutoring.Session, 0)
	for _, s := range repo.db.table {
		if s.StudentID == userID || s.TeacherID == userID {
			sessions = append(sessions, *s)
		}
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ScheduledAt.Before(sessions[j].ScheduledAt) })
	return sessions, nil
}
