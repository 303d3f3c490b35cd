package enrollment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core"
)

var (
	// errors
	ErrNotFound        = errors.New("enrollment not found")
	ErrAlreadyEnrolled = errors.New("you are already enrolled in this course")
)

type (
	Repository interface {
		// CreateEnrollment returns ErrAlreadyEnrolled when the (user, course)
		// unique constraint is violated; the existing row is left untouched.
		CreateEnrollment(ctx context.Context, enr Enrollment) (Enrollment, error)
		GetEnrollment(ctx context.Context, userID, courseID string) (Enrollment, error)
		// QueryEnrollmentsByUser returns the user's enrollments joined with
		// course display columns, most recent first.
		QueryEnrollmentsByUser(ctx context.Context, userID string) ([]EnrollmentWithCourse, error)
	}

	ServiceInterface interface {
		Enroll(ctx context.Context, userID, courseID string) (Enrollment, error)
		GetStatus(ctx context.Context, userID, courseID string) (Status, error)
		QueryByUser(ctx context.Context, userID string) ([]EnrollmentWithCourse, error)
		StatsByUser(ctx context.Context, userID string) (Stats, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// Enroll inserts a single enrollment row. A duplicate attempt surfaces as a
// distinct validation error and does not change the enrollment count.
func (svc *service) Enroll(ctx context.Context, userID, courseID string) (Enrollment, error) {
	enr := Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     StatusActive,
		EnrolledAt: time.Now().UTC(),
	}
	enr, err := svc.repo.CreateEnrollment(ctx, enr)
	if err != nil {
		if errors.Cause(err) == ErrAlreadyEnrolled {
			return Enrollment{}, core.NewValidationError(ErrAlreadyEnrolled)
		}
		return Enrollment{}, err
	}
	return enr, nil
}

func (svc *service) GetStatus(ctx context.Context, userID, courseID string) (Status, error) {
	enr, err := svc.repo.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Status{Enrolled: false}, nil
		}
		return Status{}, err
	}
	return Status{Enrolled: true, Enrollment: &enr}, nil
}

func (svc *service) QueryByUser(ctx context.Context, userID string) ([]EnrollmentWithCourse, error) {
	return svc.repo.QueryEnrollmentsByUser(ctx, userID)
}

func (svc *service) StatsByUser(ctx context.Context, userID string) (Stats, error) {
	enrollments, err := svc.repo.QueryEnrollmentsByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return DeriveStats(enrollments), nil
}
