package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/minerva/apps/api/echo"
	"github.com/trezcool/minerva/core"
	"github.com/trezcool/minerva/core/course"
	"github.com/trezcool/minerva/core/dashboard"
	"github.com/trezcool/minerva/core/enrollment"
	"github.com/trezcool/minerva/core/tutoring"
	"github.com/trezcool/minerva/core/user"
	emailsvc "github.com/trezcool/minerva/services/email"
	dummydb "github.com/trezcool/minerva/storage/database/dummy"
)

var (
	errMissingToken      = httpErr{Error: "missing or malformed jwt"}
	errProfileIncomplete = httpErr{Error: "profile incomplete"}
	errNotFound          = httpErr{Error: "not found"}
)

type fixture struct {
	app Server

	usrSvc  user.ServiceInterface
	crsSvc  course.ServiceInterface
	enrSvc  enrollment.ServiceInterface
	tutSvc  tutoring.ServiceInterface
	store   *dashboard.Store
	enrRepo enrollment.Repository
	tutRepo tutoring.Repository
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:             true,
		Env:                  "test",
		AppName:              "Minerva",
		SecretKey:            []byte("secret-test-key"),
		FrontendBaseURL:      "http://localhost:3000",
		DefaultFromEmailAddr: "noreply@minerva.local",
		Server: core.ServerConfig{
			JWTExpirationDelta:        7 * 24 * time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) *fixture {
	t.Helper()

	conf := newTestConfig()

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	usrRepo := dummydb.NewUserRepository(db)
	crsRepo := dummydb.NewCourseRepository(db)
	enrRepo := dummydb.NewEnrollmentRepository(db)
	tutRepo := dummydb.NewSessionRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	crsSvc := course.NewService(crsRepo)
	enrSvc := enrollment.NewService(enrRepo)
	tutSvc := tutoring.NewService(tutRepo, mailSvc, conf)
	store := dashboard.NewStore()

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	tutoring.InitValidators(validate, translator)

	// set up server
	app := NewServer(
		ServerDeps{
			Conf:          conf,
			Logger:        nopLogger{},
			UserSvc:       usrSvc,
			CourseSvc:     crsSvc,
			EnrollmentSvc: enrSvc,
			TutoringSvc:   tutSvc,
			DashStore:     store,
			Validate:      validate,
			Translator:    translator,
		},
	)

	return &fixture{
		app:     app,
		usrSvc:  usrSvc,
		crsSvc:  crsSvc,
		enrSvc:  enrSvc,
		tutSvc:  tutSvc,
		store:   store,
		enrRepo: enrRepo,
		tutRepo: tutRepo,
	}
}

// createUser registers a user; complete also fills the mandatory profile fields.
func (f *fixture) createUser(t *testing.T, email, pwd, fullName, role string, complete bool) user.User {
	t.Helper()

	usr, err := f.usrSvc.Create(context.Background(), user.NewUser{
		Email:           email,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	if err != nil {
		t.Fatalf("createUser(): %v", err)
	}
	if complete {
		usr, err = f.usrSvc.CompleteProfile(context.Background(), usr.ID, user.CompleteProfile{
			FullName: fullName,
			Role:     role,
		})
		if err != nil {
			t.Fatalf("createUser(): %v", err)
		}
	}
	return usr
}

func (f *fixture) createCourse(t *testing.T, title, subject, grade, instructor string) course.Course {
	t.Helper()

	crs, err := f.crsSvc.Create(context.Background(), course.NewCourse{
		Title:          title,
		Subject:        subject,
		GradeLevel:     grade,
		InstructorName: instructor,
		DurationHours:  10,
	})
	if err != nil {
		t.Fatalf("createCourse(): %v", err)
	}
	return crs
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
