package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/minerva/core/user"
)

func TestUserRegister(t *testing.T) {
	f := setup(t)
	f.createUser(t, "taken@minerva.cd", "Str0ng#Pass", "", "", false)

	tests := []httpTest{
		{
			name:     "invalid email",
			body:     []byte(`{"email": "nope", "password": "Str0ng#Pass", "password_confirm": "Str0ng#Pass"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		{
			name:     "password mismatch",
			body:     []byte(`{"email": "new@minerva.cd", "password": "Str0ng#Pass", "password_confirm": "0ther#Pass1"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"password_confirm": "password_confirm must be equal to Password"}),
		},
		{
			name:     "weak password",
			body:     []byte(`{"email": "new@minerva.cd", "password": "alllowercase1", "password_confirm": "alllowercase1"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"password": "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character",
			}),
		},
		{
			name:     "duplicate email",
			body:     []byte(`{"email": "taken@minerva.cd", "password": "Str0ng#Pass", "password_confirm": "Str0ng#Pass"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/register", tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		body := []byte(`{"email": "hero@minerva.cd", "password": "Str0ng#Pass", "password_confirm": "Str0ng#Pass"}`)
		req, rec := newRequest(http.MethodPost, "/v1/users/register", body)
		f.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var resp struct {
			User  user.User `json:"user"`
			Token string    `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if resp.User.Email != "hero@minerva.cd" {
			t.Errorf("email = %q; want %q", resp.User.Email, "hero@minerva.cd")
		}
		if resp.Token == "" {
			t.Error("token is empty")
		}
		if resp.User.ProfileComplete() {
			t.Error("new user's profile should be incomplete")
		}
	})
}

func TestUserLogin(t *testing.T) {
	f := setup(t)
	f.createUser(t, "hero@minerva.cd", "Str0ng#Pass", "", "", false)

	tests := []httpTest{
		{
			name:     "unknown email",
			body:     []byte(`{"email": "ghost@minerva.cd", "password": "Str0ng#Pass"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"email": "hero@minerva.cd", "password": "Wr0ng#Pass!"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		body := []byte(`{"email": "hero@minerva.cd", "password": "Str0ng#Pass"}`)
		req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
		f.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if resp.Token == "" {
			t.Error("token is empty")
		}
	})
}

func TestUserMe(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "hero@minerva.cd", "Str0ng#Pass", "Jane Hero", user.RoleStudent, true)
	token := getToken(t, usr)

	t.Run("requires auth", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/users/me")
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, usr)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", token)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("update full name only", func(t *testing.T) {
		body := []byte(`{"full_name": "Jane Legend"}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/me", token, body)
		f.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var got user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if got.FullName.String != "Jane Legend" {
			t.Errorf("full_name = %q; want %q", got.FullName.String, "Jane Legend")
		}
		if got.Email != usr.Email || got.Role != usr.Role {
			t.Error("update must not touch email or role")
		}
	})

	t.Run("update requires full name", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"full_name": "this field is required"}),
		}
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/me", token, []byte(`{"full_name": "  "}`))
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func TestUserProfileCompletion(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "fresh@minerva.cd", "Str0ng#Pass", "", "", false)
	token := getToken(t, usr)

	t.Run("starts incomplete", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, map[string]string{"state": "incomplete"})}
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/me/completion", token)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("gate blocks learning features", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errProfileIncomplete)}
		for _, path := range []string{"/v1/courses", "/v1/enrollments", "/v1/tutoring-sessions", "/v1/dashboard"} {
			req, rec := newAuthRequest(http.MethodGet, path, token)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		}
	})

	t.Run("submit rejects missing role", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "this field is required"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/me/complete-profile", token, []byte(`{"full_name": "Jo Doe"}`))
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("submit rejects unknown role", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"role": "must be one of: student, teacher"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/me/complete-profile", token, []byte(`{"full_name": "Jo Doe", "role": "admin"}`))
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("complete releases the gate", func(t *testing.T) {
		body := []byte(`{"full_name": "Jo Doe", "role": "student"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/me/complete-profile", token, body)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, map[string]string{"state": "complete"})}
		req, rec = newAuthRequest(http.MethodGet, "/v1/users/me/completion", token)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		req, rec = newAuthRequest(http.MethodGet, "/v1/courses", token)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("gate still closed after completion; code = %v; body: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestUserRoles(t *testing.T) {
	f := setup(t)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, user.Roles)}
	req, rec := newRequest(http.MethodGet, "/v1/users/roles")
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func TestGateRejectsDeletedAccount(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "gone@minerva.cd", "Str0ng#Pass", "Jo Gone", user.RoleStudent, true)
	token := getToken(t, usr)

	if err := f.usrSvc.Delete(context.Background(), usr.ID); err != nil {
		t.Fatalf("Delete(): %v", err)
	}

	// the token is still valid but the account behind it is gone
	tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "user not authenticated"})}
	req, rec := newAuthRequest(http.MethodGet, "/v1/courses", token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func TestUserTokenRefresh(t *testing.T) {
	f := setup(t)
	usr := f.createUser(t, "hero@minerva.cd", "Str0ng#Pass", "Jane Hero", user.RoleTeacher, true)
	token := getToken(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", token)
	f.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if resp.Token == "" {
		t.Error("token is empty")
	}
}
