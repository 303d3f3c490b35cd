package user

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/minerva/core"
)

// Roles a profile may assume once completed.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleStudent, RoleTeacher}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var Roles = []Role{
	{Name: "Student", Value: RoleStudent},
	{Name: "Teacher", Value: RoleTeacher},
}

// CompletionState is the profile gate state: dependent features stay blocked
// until the state is CompletionComplete.
type CompletionState string

const (
	CompletionUnknown    CompletionState = "unknown" // profile not loaded (or load failed)
	CompletionIncomplete CompletionState = "incomplete"
	CompletionComplete   CompletionState = "complete"
)

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	FullName     null.String `json:"full_name"`
	Role         null.String `json:"role"` // student | teacher; unset until profile completion
	IsActive     *bool       `json:"is_active"`
	PasswordHash []byte      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
	LastLogin    time.Time   `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) SetActive(active bool) {
	u.IsActive = &active
}

func (u *User) IsStudent() bool { return u.Role.String == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role.String == RoleTeacher }

// ProfileComplete reports whether the mandatory profile fields are set:
// a non-blank full name and one of the enumerated roles.
func (u *User) ProfileComplete() bool {
	return strings.TrimSpace(u.FullName.String) != "" && u.Role.String != ""
}

// Completion derives the gate state from a loaded profile.
func (u *User) Completion() CompletionState {
	if u.ProfileComplete() {
		return CompletionComplete
	}
	return CompletionIncomplete
}

// NewUser contains information needed to register a new User.
// The profile starts incomplete; full name and role come later via CompleteProfile.
type NewUser struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc ServiceInterface) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(ctx, nu.Email)
}

// UpdateUser defines what the profile screen may modify: the full name only.
type UpdateUser struct {
	FullName string `json:"full_name" validate:"required"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.FullName = core.CleanString(uu.FullName)
	return validate.Struct(uu)
}

// CompleteProfile carries the mandatory fields required to release the
// profile gate. Submit is rejected until both are valid.
type CompleteProfile struct {
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

func (cp *CompleteProfile) Validate(validate *validator.Validate) error {
	cp.FullName = core.CleanString(cp.FullName)
	cp.Role = core.CleanString(cp.Role, true /* lower */)
	return validate.Struct(cp)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type GetFilter struct {
	ID    string
	Email string
}

type QueryFilter struct {
	Search      string    `query:"search"` // matches FullName or Email
	Role        string    `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
}
