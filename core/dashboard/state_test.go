package dashboard

import "testing"

func TestViewTransitions(t *testing.T) {
	t.Run("initial view is the catalog", func(t *testing.T) {
		if got := Initial(); got != (View{Name: ViewCatalog}) {
			t.Errorf("Initial() = %+v", got)
		}
	})

	t.Run("selecting a course opens its details", func(t *testing.T) {
		got := Initial().SelectCourse("crs1")
		want := View{Name: ViewCourseDetails, CourseID: "crs1"}
		if got != want {
			t.Errorf("SelectCourse() = %+v, want %+v", got, want)
		}
	})

	t.Run("back clears the selection", func(t *testing.T) {
		got := Initial().SelectCourse("crs1").Back()
		if got != (View{Name: ViewCatalog}) {
			t.Errorf("Back() = %+v, want catalog with no course", got)
		}
	})

	t.Run("navigate to top entries", func(t *testing.T) {
		for _, name := range []ViewName{ViewCatalog, ViewTutoring, ViewProfile} {
			got, err := Initial().Navigate(name)
			if err != nil {
				t.Fatalf("Navigate(%q): %v", name, err)
			}
			if got.Name != name {
				t.Errorf("Navigate(%q) = %+v", name, got)
			}
		}
	})

	t.Run("navigate keeps the current selection", func(t *testing.T) {
		v := Initial().SelectCourse("crs1")
		got, err := v.Navigate(ViewTutoring)
		if err != nil {
			t.Fatalf("Navigate(): %v", err)
		}
		if got.CourseID != "crs1" {
			t.Errorf("Navigate() dropped the selected course: %+v", got)
		}
	})

	t.Run("unknown view is rejected and state is unchanged", func(t *testing.T) {
		v := Initial().SelectCourse("crs1")
		got, err := v.Navigate("settings")
		if err != ErrUnknownView {
			t.Fatalf("Navigate() error = %v, want %v", err, ErrUnknownView)
		}
		if got != v {
			t.Errorf("Navigate() = %+v, want %+v", got, v)
		}
	})
}

func TestViewResolve(t *testing.T) {
	tests := []struct {
		name string
		view View
		want View
	}{
		{name: "catalog renders as is", view: View{Name: ViewCatalog}, want: View{Name: ViewCatalog}},
		{name: "details with a course renders as is", view: View{Name: ViewCourseDetails, CourseID: "crs1"}, want: View{Name: ViewCourseDetails, CourseID: "crs1"}},
		{name: "details without a course falls back to the catalog", view: View{Name: ViewCourseDetails}, want: View{Name: ViewCatalog}},
		{name: "stale id on an id-less view is harmless", view: View{Name: ViewTutoring, CourseID: "crs1"}, want: View{Name: ViewTutoring, CourseID: "crs1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
