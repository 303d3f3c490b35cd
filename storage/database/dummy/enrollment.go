package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/minerva/core/enrollment"
)

type enrollmentRepository struct {
	db       *enrollmentTable
	courseDB *courseTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) *enrollmentRepository {
	return &enrollmentRepository{db: db.enrollment, courseDB: db.course}
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// UNIQUE (user_id, course_id)
	for _, e := range repo.db.table {
		if e.UserID == enr.UserID && e.CourseID == enr.CourseID {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
	}

	enr.ID = uuid.New().String()
	repo.db.table[enr.ID] = &enr
	return enr, nil
}

func (repo *enrollmentRepository) GetEnrollment(ctx context.Context, userID, courseID string) (enrollment.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, e := range repo.db.table {
		if e.UserID == userID && e.CourseID == courseID {
			return *e, nil
		}
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) QueryEnrollmentsByUser(ctx context.Context, userID string) ([]enrollment.EnrollmentWithCourse, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	repo.courseDB.RLock()
	defer repo.courseDB.RUnlock()

	enrollments := make([]enrollment.EnrollmentWithCourse, 0)
	for _, e := range repo.db.table {
		if e.UserID != userID {
			continue
		}
		enr := enrollment.EnrollmentWithCourse{Enrollment: *e}
		if crs, ok := repo.courseDB.table[e.CourseID]; ok {
			enr.Course = enrollment.CourseInfo{
				Title:          crs.Title,
				Subject:        crs.Subject,
				GradeLevel:     crs.GradeLevel,
				InstructorName: crs.InstructorName,
			}
		}
		enrollments = append(enrollments, enr)
	}

	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].EnrolledAt.After(enrollments[j].EnrolledAt) })
	return enrollments, nil
}
