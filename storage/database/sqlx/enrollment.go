package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core/enrollment"
)

// pgUniqueViolation is the postgres error code raised when the
// UNIQUE (user_id, course_id) constraint rejects a duplicate enrollment.
const pgUniqueViolation = "23505"

type enrollmentRow struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	CourseID   string    `db:"course_id"`
	Status     string    `db:"status"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

func (r enrollmentRow) toEnrollment() enrollment.Enrollment {
	return enrollment.Enrollment(r)
}

type enrollmentCourseRow struct {
	enrollmentRow
	CourseTitle      string `db:"course_title"`
	CourseSubject    string `db:"course_subject"`
	CourseGradeLevel string `db:"course_grade_level"`
	CourseInstructor string `db:"course_instructor_name"`
}

func (r enrollmentCourseRow) toEnrollmentWithCourse() enrollment.EnrollmentWithCourse {
	return enrollment.EnrollmentWithCourse{
		Enrollment: r.toEnrollment(),
		Course: enrollment.CourseInfo{
			Title:          r.CourseTitle,
			Subject:        r.CourseSubject,
			GradeLevel:     r.CourseGradeLevel,
			InstructorName: r.CourseInstructor,
		},
	}
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo enrollmentRepository) CreateEnrollment(ctx context.Context, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	enr.ID = uuid.New().String()
	row := enrollmentRow(enr)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO enrollments (id, user_id, course_id, status, enrolled_at)
		VALUES (:id, :user_id, :course_id, :status, :enrolled_at)`, row)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pgUniqueViolation {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return row.toEnrollment(), nil
}

func (repo enrollmentRepository) GetEnrollment(ctx context.Context, userID, courseID string) (enrollment.Enrollment, error) {
	var row enrollmentRow
	query := repo.db.Rebind(`SELECT * FROM enrollments WHERE user_id = ? AND course_id = ?`)
	if err := repo.db.GetContext(ctx, &row, query, userID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return enrollment.Enrollment{}, enrollment.ErrNotFound
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "finding enrollment")
	}
	return row.toEnrollment(), nil
}

func (repo enrollmentRepository) QueryEnrollmentsByUser(ctx context.Context, userID string) ([]enrollment.EnrollmentWithCourse, error) {
	query := repo.db.Rebind(`
		SELECT e.id, e.user_id, e.course_id, e.status, e.enrolled_at,
		       c.title AS course_title, c.subject AS course_subject,
		       c.grade_level AS course_grade_level, c.instructor_name AS course_instructor_name
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC`)

	var rows []enrollmentCourseRow
	if err := repo.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}

	enrollments := make([]enrollment.EnrollmentWithCourse, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, row.toEnrollmentWithCourse())
	}
	return enrollments, nil
}
