package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/minerva/core/course"
	"github.com/trezcool/minerva/core/user"
)

func TestCourseQuery(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "student@minerva.cd", "Str0ng#Pass", "Jane Doe", user.RoleStudent, true)
	token := getToken(t, usr)

	algebra := f.createCourse(t, "Algebra Basics", "Mathematics", "Grade 8", "Mr. Kalala")
	chem := f.createCourse(t, "Organic Chemistry", "Science", "Grade 12", "Dr. Mbuyi")
	civics := f.createCourse(t, "Civics and Society", "Social Studies", "grade 8", "Mrs. Ilunga")

	tests := []httpTest{
		{
			name:     "no filter returns all",
			path:     "/v1/courses",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []course.Course{algebra, chem, civics}),
		},
		{
			name:     "search matches title case-insensitively",
			path:     "/v1/courses?search=ALGEBRA",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []course.Course{algebra}),
		},
		{
			name:     "search matches subject",
			path:     "/v1/courses?search=science",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []course.Course{chem}),
		},
		{
			name:     "search matches grade level across cases",
			path:     "/v1/courses?search=Grade%208",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []course.Course{algebra, civics}),
		},
		{
			name:     "no match yields empty list",
			path:     "/v1/courses?search=astrophysics",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []course.Course{}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestCourseRetrieve(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "student@minerva.cd", "Str0ng#Pass", "Jane Doe", user.RoleStudent, true)
	token := getToken(t, usr)

	crs := f.createCourse(t, "Algebra Basics", "Mathematics", "Grade 8", "Mr. Kalala")

	tests := []httpTest{
		{
			name:     "ok",
			path:     "/v1/courses/" + crs.ID,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, crs),
		},
		{
			name:     "unknown id",
			path:     "/v1/courses/00000000-0000-0000-0000-000000000000",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
