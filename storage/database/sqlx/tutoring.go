package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/minerva/core/tutoring"
)

type sessionRow struct {
	ID            string      `db:"id"`
	StudentID     string      `db:"student_id"`
	TeacherID     string      `db:"teacher_id"`
	Subject       string      `db:"subject"`
	ScheduledAt   time.Time   `db:"scheduled_at"`
	DurationHours int         `db:"duration_hours"`
	Status        null.String `db:"status"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (r sessionRow) toSession() tutoring.Session {
	return tutoring.Session(r)
}

type sessionRepository struct {
	db *sqlx.DB
}

var _ tutoring.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *sqlx.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (repo sessionRepository) CreateSession(ctx context.Context, sess tutoring.Session) (tutoring.Session, error) {
	sess.ID = uuid.New().String()
	row := sessionRow(sess)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO tutoring_sessions (id, student_id, teacher_id, subject, scheduled_at, duration_hours, status, created_at)
		VALUES (:id, :student_id, :teacher_id, :subject, :scheduled_at, :duration_hours, :status, :created_at)`, row)
	if err != nil {
		return tutoring.Session{}, errors.Wrap(err, "inserting session")
	}
	return row.toSession(), nil
}

func (repo sessionRepository) QuerySessionsByUser(ctx context.Context, userID string) ([]tutoring.Session, error) {
	query := repo.db.Rebind(`
		SELECT * FROM tutoring_sessions
		WHERE student_id = ? OR teacher_id = ?
		ORDER BY scheduled_at ASC`)

	var rows []sessionRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID, userID); err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}

	sessions := make([]tutoring.Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toSession())
	}
	return sessions, nil
}
