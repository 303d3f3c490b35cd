package course

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/minerva/core"
)

// Course is read-only through the API; rows are seeded by the admin CLI.
type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Subject        string    `json:"subject"`
	GradeLevel     string    `json:"grade_level"`
	Description    string    `json:"description"`
	InstructorName string    `json:"instructor_name"`
	Rating         float64   `json:"rating"`
	StudentCount   int       `json:"student_count"`
	DurationHours  int       `json:"duration_hours"`
	Language       string    `json:"language"`
	CreatedAt      time.Time `json:"created_at"` // UTC
}

// MatchesSearch reports whether the term matches the course's title, subject
// or grade level, case-insensitively. An empty term matches everything.
func (c Course) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Subject), term) ||
		strings.Contains(strings.ToLower(c.GradeLevel), term)
}

// NewCourse contains information needed to seed a new Course.
type NewCourse struct {
	Title          string  `json:"title" validate:"required"`
	Subject        string  `json:"subject" validate:"required"`
	GradeLevel     string  `json:"grade_level" validate:"required"`
	Description    string  `json:"description"`
	InstructorName string  `json:"instructor_name" validate:"required"`
	Rating         float64 `json:"rating" validate:"gte=0,lte=5"`
	StudentCount   int     `json:"student_count" validate:"gte=0"`
	DurationHours  int     `json:"duration_hours" validate:"gt=0"`
	Language       string  `json:"language"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Subject = core.CleanString(nc.Subject)
	nc.GradeLevel = core.CleanString(nc.GradeLevel)
	nc.InstructorName = core.CleanString(nc.InstructorName)
	return validate.Struct(nc)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// ApplyFilter returns the subset of courses matching the filter's search term.
// It is deterministic and idempotent: filtering an already-filtered set with
// the same term yields the same set.
func ApplyFilter(courses []Course, filter *QueryFilter) []Course {
	if filter == nil || filter.Search == "" {
		return courses
	}
	filtered := make([]Course, 0, len(courses))
	for _, c := range courses {
		if c.MatchesSearch(filter.Search) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
