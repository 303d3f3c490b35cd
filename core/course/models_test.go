package course

import (
	"reflect"
	"testing"
)

var catalog = []Course{
	{ID: "1", Title: "Algebra Basics", Subject: "Mathematics", GradeLevel: "Grade 8"},
	{ID: "2", Title: "Organic Chemistry", Subject: "Science", GradeLevel: "Grade 12"},
	{ID: "3", Title: "Civics and Society", Subject: "Social Studies", GradeLevel: "grade 8"},
}

func TestMatchesSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		crs  Course
		want bool
	}{
		{name: "empty term matches all", term: "", crs: catalog[0], want: true},
		{name: "title match", term: "algebra", crs: catalog[0], want: true},
		{name: "title match is case-insensitive", term: "ALGEBRA", crs: catalog[0], want: true},
		{name: "subject match", term: "science", crs: catalog[1], want: true},
		{name: "grade level match", term: "Grade 8", crs: catalog[2], want: true},
		{name: "substring match", term: "chem", crs: catalog[1], want: true},
		{name: "no match", term: "astrophysics", crs: catalog[0], want: false},
		{name: "description is not searched", term: "syllabus", crs: Course{Description: "full syllabus"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.crs.MatchesSearch(tt.term); got != tt.want {
				t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	t.Run("nil filter returns all", func(t *testing.T) {
		if got := ApplyFilter(catalog, nil); !reflect.DeepEqual(got, catalog) {
			t.Errorf("ApplyFilter() = %v, want all courses", got)
		}
	})

	t.Run("filters across title, subject and grade level", func(t *testing.T) {
		got := ApplyFilter(catalog, &QueryFilter{Search: "grade 8"})
		if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
			t.Errorf("ApplyFilter() = %v, want courses 1 and 3", got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		filter := &QueryFilter{Search: "science"}
		once := ApplyFilter(catalog, filter)
		twice := ApplyFilter(once, filter)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("filtering twice changed the result: %v != %v", once, twice)
		}
	})
}
