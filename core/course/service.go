package course

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		// QueryCourses applies QueryFilter.Search as a case-insensitive match
		// on one of Course.Title, Course.Subject or Course.GradeLevel.
		QueryCourses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
		GetByID(ctx context.Context, id string) (Course, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	crs := Course{
		Title:          nc.Title,
		Subject:        nc.Subject,
		GradeLevel:     nc.GradeLevel,
		Description:    nc.Description,
		InstructorName: nc.InstructorName,
		Rating:         nc.Rating,
		StudentCount:   nc.StudentCount,
		DurationHours:  nc.DurationHours,
		Language:       nc.Language,
		CreatedAt:      time.Now().UTC(),
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, filter, ordering)
}

func (svc *service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}
