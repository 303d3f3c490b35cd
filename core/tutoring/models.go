package tutoring

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/minerva/core"
)

// Session statuses
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Session struct {
	ID            string      `json:"id"`
	StudentID     string      `json:"student_id"`
	TeacherID     string      `json:"teacher_id"`
	Subject       string      `json:"subject"`
	ScheduledAt   time.Time   `json:"scheduled_at"` // UTC
	DurationHours int         `json:"duration_hours"`
	Status        null.String `json:"status"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
}

// DisplayStatus defaults to "scheduled" when the stored status is absent.
func (s Session) DisplayStatus() string {
	if s.Status.String == "" {
		return StatusScheduled
	}
	return s.Status.String
}

// NewSession contains the booking form fields. All three are required;
// a missing field is a validation error, never a silent no-op.
type NewSession struct {
	Subject       string    `json:"subject" validate:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" validate:"required"`
	DurationHours int       `json:"duration_hours" validate:"required,duration"`
	TeacherID     string    `json:"teacher_id"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.Subject = core.CleanString(ns.Subject)
	return validate.Struct(ns)
}

var (
	durationTag  = "duration"
	durationText = "must be one of: 1, 2 or 3 hours"
)

// InitValidators registers tutoring-specific validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(durationTag, durationValidation)
	core.RegisterCustomTranslation(validate, translator, durationTag, durationText)
}

// durationValidation checks that the booked duration is in the enumerated set.
func durationValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Int() {
	case 1, 2, 3:
		return true
	}
	return false
}
