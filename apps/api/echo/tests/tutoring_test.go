package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/minerva/core/tutoring"
	"github.com/trezcool/minerva/core/user"
)

func TestTutoringBook(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "student@minerva.cd", "Str0ng#Pass", "Jane Doe", user.RoleStudent, true)
	teacher := f.createUser(t, "teacher@minerva.cd", "Str0ng#Pass", "Mr. Kalala", user.RoleTeacher, true)
	token := getToken(t, usr)

	scheduledAt := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)

	tests := []httpTest{
		{
			name:     "missing subject",
			body:     []byte(fmt.Sprintf(`{"scheduled_at": %q, "duration_hours": 2}`, scheduledAt)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"subject": "this field is required"}),
		},
		{
			name:     "missing schedule",
			body:     []byte(`{"subject": "Algebra", "duration_hours": 2}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"scheduled_at": "this field is required"}),
		},
		{
			name:     "duration out of range",
			body:     []byte(fmt.Sprintf(`{"subject": "Algebra", "scheduled_at": %q, "duration_hours": 5}`, scheduledAt)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"duration_hours": "must be one of: 1, 2 or 3 hours"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/tutoring-sessions", token, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("teacher defaults to the booking user", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"subject": "Algebra", "scheduled_at": %q, "duration_hours": 2}`, scheduledAt))
		req, rec := newAuthRequest(http.MethodPost, "/v1/tutoring-sessions", token, body)
		f.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var sess tutoring.Session
		if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if sess.StudentID != usr.ID || sess.TeacherID != usr.ID {
			t.Errorf("session = %+v; want student and teacher %q", sess, usr.ID)
		}
		if sess.Status.String != tutoring.StatusScheduled {
			t.Errorf("status = %q; want %q", sess.Status.String, tutoring.StatusScheduled)
		}
	})

	t.Run("explicit teacher is kept", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"subject": "Algebra", "scheduled_at": %q, "duration_hours": 1, "teacher_id": %q}`, scheduledAt, teacher.ID))
		req, rec := newAuthRequest(http.MethodPost, "/v1/tutoring-sessions", token, body)
		f.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var sess tutoring.Session
		if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if sess.TeacherID != teacher.ID {
			t.Errorf("teacher_id = %q; want %q", sess.TeacherID, teacher.ID)
		}
	})
}

func TestTutoringQueryDefaultsAbsentStatus(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "student@minerva.cd", "Str0ng#Pass", "Jane Doe", user.RoleStudent, true)
	token := getToken(t, usr)

	now := time.Now().UTC()
	// stored without a status, as legacy rows may be
	sess := tutoring.Session{
		StudentID:     usr.ID,
		TeacherID:     usr.ID,
		Subject:       "Algebra",
		ScheduledAt:   now.Add(24 * time.Hour),
		DurationHours: 1,
		CreatedAt:     now,
	}
	if _, err := f.tutRepo.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("CreateSession(): %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/tutoring-sessions", token)
	f.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got []tutoring.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d; want 1; body: %s", len(got), rec.Body.String())
	}
	if !got[0].Status.Valid || got[0].Status.String != tutoring.StatusScheduled {
		t.Errorf("status = %+v; want %q; body: %s", got[0].Status, tutoring.StatusScheduled, rec.Body.String())
	}
}

func TestTutoringQuery(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "student@minerva.cd", "Str0ng#Pass", "Jane Doe", user.RoleStudent, true)
	teacher := f.createUser(t, "teacher@minerva.cd", "Str0ng#Pass", "Mr. Kalala", user.RoleTeacher, true)
	stranger := f.createUser(t, "other@minerva.cd", "Str0ng#Pass", "Jo Moyo", user.RoleStudent, true)
	token := getToken(t, usr)

	now := time.Now().UTC()
	ctx := context.Background()
	seed := []tutoring.Session{
		{StudentID: usr.ID, TeacherID: teacher.ID, Subject: "Chemistry", ScheduledAt: now.Add(72 * time.Hour), DurationHours: 1, Status: null.StringFrom(tutoring.StatusScheduled), CreatedAt: now},
		{StudentID: usr.ID, TeacherID: teacher.ID, Subject: "Algebra", ScheduledAt: now.Add(24 * time.Hour), DurationHours: 2, Status: null.StringFrom(tutoring.StatusScheduled), CreatedAt: now},
		// the user shows up as the teacher here
		{StudentID: stranger.ID, TeacherID: usr.ID, Subject: "Civics", ScheduledAt: now.Add(48 * time.Hour), DurationHours: 3, Status: null.StringFrom(tutoring.StatusCompleted), CreatedAt: now},
		// unrelated session, must not leak
		{StudentID: stranger.ID, TeacherID: teacher.ID, Subject: "History", ScheduledAt: now.Add(24 * time.Hour), DurationHours: 1, Status: null.StringFrom(tutoring.StatusScheduled), CreatedAt: now},
	}
	for _, sess := range seed {
		if _, err := f.tutRepo.CreateSession(ctx, sess); err != nil {
			t.Fatalf("CreateSession(): %v", err)
		}
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/tutoring-sessions", token)
	f.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got []tutoring.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d; want 3; body: %s", len(got), rec.Body.String())
	}
	wantSubjects := []string{"Algebra", "Civics", "Chemistry"} // ascending by scheduled time
	for i, want := range wantSubjects {
		if got[i].Subject != want {
			t.Errorf("got[%d].Subject = %q; want %q", i, got[i].Subject, want)
		}
	}
}
