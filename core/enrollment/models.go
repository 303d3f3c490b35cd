package enrollment

import (
	"time"
)

// Enrollment statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Enrollment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"` // UTC
}

// CourseInfo carries the course display columns joined for the profile screen.
type CourseInfo struct {
	Title          string `json:"title"`
	Subject        string `json:"subject"`
	GradeLevel     string `json:"grade_level"`
	InstructorName string `json:"instructor_name"`
}

type EnrollmentWithCourse struct {
	Enrollment
	Course CourseInfo `json:"course"`
}

// Status is what the course-details screen consumes: absence of an
// enrollment is a regular outcome, not an error.
type Status struct {
	Enrolled   bool        `json:"enrolled"`
	Enrollment *Enrollment `json:"enrollment,omitempty"`
}

// Stats are derived counters; computed from the fetched list,
// never from a separate aggregation query.
type Stats struct {
	Enrolled  int `json:"enrolled"`
	Completed int `json:"completed"`
}

// DeriveStats computes learning-stats counters from an enrollment list.
func DeriveStats(enrollments []EnrollmentWithCourse) Stats {
	stats := Stats{Enrolled: len(enrollments)}
	for _, e := range enrollments {
		if e.Status == StatusCompleted {
			stats.Completed++
		}
	}
	return stats
}
