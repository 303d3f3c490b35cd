package dummydb

import (
	"sync"

	"github.com/trezcool/minerva/core/course"
	"github.com/trezcool/minerva/core/enrollment"
	"github.com/trezcool/minerva/core/tutoring"
	"github.com/trezcool/minerva/core/user"
)

type (
	DB struct {
		user       *userTable
		course     *courseTable
		enrollment *enrollmentTable
		tutoring   *sessionTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}

	enrollmentTable struct {
		sync.RWMutex
		table map[string]*enrollment.Enrollment
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]*tutoring.Session
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		course:     &courseTable{table: make(map[string]*course.Course)},
		enrollment: &enrollmentTable{table: make(map[string]*enrollment.Enrollment)},
		tutoring:   &sessionTable{table: make(map[string]*tutoring.Session)},
	}
	return db, nil
}
