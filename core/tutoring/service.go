package tutoring

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/minerva/core"
	"github.com/trezcool/minerva/core/user"
)

var ErrNotFound = errors.New("session not found")

type (
	Repository interface {
		CreateSession(ctx context.Context, sess Session) (Session, error)
		// QuerySessionsByUser returns sessions where the user is the student
		// or the teacher, ordered ascending by scheduled time.
		QuerySessionsByUser(ctx context.Context, userID string) ([]Session, error)
	}

	ServiceInterface interface {
		Book(ctx context.Context, usr user.User, ns NewSession) (Session, error)
		QueryForUser(ctx context.Context, userID string) ([]Session, error)
	}

	service struct {
		conf    *core.Config
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *service {
	return &service{
		conf:    conf,
		repo:    repo,
		mailSvc: mailSvc,
	}
}

// Book schedules a new session for the given user. The teacher defaults to
// the booking user when none is provided. Status defaults to "scheduled".
func (svc *service) Book(ctx context.Context, usr user.User, ns NewSession) (Session, error) {
	teacherID := ns.TeacherID
	if teacherID == "" {
		teacherID = usr.ID
	}
	sess := Session{
		StudentID:     usr.ID,
		TeacherID:     teacherID,
		Subject:       ns.Subject,
		ScheduledAt:   ns.ScheduledAt.UTC(),
		DurationHours: ns.DurationHours,
		Status:        null.StringFrom(StatusScheduled),
		CreatedAt:     time.Now().UTC(),
	}
	sess, err := svc.repo.CreateSession(ctx, sess)
	if err != nil {
		return Session{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.FullName.String, Address: usr.Email}},
		Subject: "Session Booked",
		BodyStr: fmt.Sprintf(
			"Your %s tutoring session has been scheduled for %s (%dh).",
			sess.Subject, sess.ScheduledAt.Format(time.RFC1123), sess.DurationHours,
		),
	})
	return sess, nil
}

func (svc *service) QueryForUser(ctx context.Context, userID string) ([]Session, error) {
	sessions, err := svc.repo.QuerySessionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	// rows stored without a status render as scheduled
	for i := range sessions {
		sessions[i].Status = null.StringFrom(sessions[i].DisplayStatus())
	}
	return sessions, nil
}
