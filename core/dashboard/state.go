package dashboard

import "github.com/pkg/errors"

var ErrUnknownView = errors.New("unknown view")

type ViewName string

const (
	ViewCatalog       ViewName = "catalog"
	ViewCourseDetails ViewName = "course-details"
	ViewTutoring      ViewName = "tutoring"
	ViewProfile       ViewName = "profile"
)

// View is the dashboard shell's current screen. CourseID is meaningful only
// for the course-details variant; other views may carry a stale id, which
// Resolve ignores.
type View struct {
	Name     ViewName `json:"view"`
	CourseID string   `json:"course_id,omitempty"`
}

// Initial is the view shown right after the profile gate releases.
func Initial() View {
	return View{Name: ViewCatalog}
}

// SelectCourse moves to course-details carrying the selected id.
func (v View) SelectCourse(courseID string) View {
	return View{Name: ViewCourseDetails, CourseID: courseID}
}

// Back returns to the catalog and clears the selected id.
func (v View) Back() View {
	return View{Name: ViewCatalog}
}

// Navigate jumps straight to a top-navigation entry. The selected id is left
// as-is for id-less views; rendering never depends on it there.
func (v View) Navigate(name ViewName) (View, error) {
	switch name {
	case ViewCatalog, ViewTutoring, ViewProfile:
		return View{Name: name, CourseID: v.CourseID}, nil
	case ViewCourseDetails:
		// reachable only via SelectCourse; allow it and let Resolve guard
		return View{Name: name, CourseID: v.CourseID}, nil
	}
	return v, ErrUnknownView
}

// Resolve returns the view that should actually render: course-details with
// no selected id falls back to the catalog instead of erroring.
func (v View) Resolve() View {
	if v.Name == ViewCourseDetails && v.CourseID == "" {
		return View{Name: ViewCatalog}
	}
	return v
}
