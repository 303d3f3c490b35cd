package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core"
	"github.com/trezcool/minerva/core/course"
)

type courseRow struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Subject        string    `db:"subject"`
	GradeLevel     string    `db:"grade_level"`
	Description    string    `db:"description"`
	InstructorName string    `db:"instructor_name"`
	Rating         float64   `db:"rating"`
	StudentCount   int       `db:"student_count"`
	DurationHours  int       `db:"duration_hours"`
	Language       string    `db:"language"`
	CreatedAt      time.Time `db:"created_at"`
}

func newCourseRow(crs course.Course) courseRow {
	return courseRow(crs)
}

func (r courseRow) toCourse() course.Course {
	return course.Course(r)
}

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()
	row := newCourseRow(crs)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO courses (id, title, subject, grade_level, description, instructor_name,
		                     rating, student_count, duration_hours, language, created_at)
		VALUES (:id, :title, :subject, :grade_level, :description, :instructor_name,
		        :rating, :student_count, :duration_hours, :language, :created_at)`, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.toCourse(), nil
}

func (repo courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return course.Course{}, course.ErrNotFound
	}

	var row courseRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(`SELECT * FROM courses WHERE id = ?`), id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course")
	}
	return row.toCourse(), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter *course.QueryFilter, ordering []core.DBOrdering) ([]course.Course, error) {
	query := `SELECT * FROM courses`
	var args []interface{}

	// courses with Title, Subject or GradeLevel matching the search keyword
	if filter != nil && filter.Search != "" {
		val := "%" + filter.Search + "%"
		query += ` WHERE title ILIKE ? OR subject ILIKE ? OR grade_level ILIKE ?`
		args = append(args, val, val, val)
	}
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			orderList = append(orderList, ord.String())
		}
		query += ` ORDER BY ` + strings.Join(orderList, ", ")
	}

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}

	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toCourse())
	}
	return courses, nil
}
