package event

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

// Event types
const (
	TypeTraining = "training"
	TypeGame     = "game"
	TypeOther    = "other"
)

const dateFormat = "2006-01-02"

type Event struct {
	ID        string      `json:"id" db:"id"`
	TeamID    string      `json:"team_id" db:"team_id"`
	Type      string      `json:"type" db:"type"`
	Date      time.Time   `json:"date" db:"date"`
	StartTime null.String `json:"start_time" db:"start_time"` // HH:MM, local to the team
	Title     null.String `json:"title" db:"title"`
	NotesPre  null.String `json:"notes_pre" db:"notes_pre"`
	NotesPost null.String `json:"notes_post" db:"notes_post"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewEvent contains information needed to schedule a new Event.
type NewEvent struct {
	Type      string `json:"type" validate:"required,oneof=training game other"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"`
	Title     string `json:"title" validate:"omitempty,max=200"`
	NotesPre  string `json:"notes_pre"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Type = core.CleanString(ne.Type, true /* lower */)
	ne.Date = core.CleanString(ne.Date)
	ne.StartTime = core.CleanString(ne.StartTime)
	ne.Title = core.CleanString(ne.Title)
	return validate.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an existing Event.
// Empty fields are left unchanged.
type UpdateEvent struct {
	Type      string `json:"type" validate:"omitempty,oneof=training game other"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"`
	Title     string `json:"title" validate:"omitempty,max=200"`
	NotesPre  string `json:"notes_pre"`
	NotesPost string `json:"notes_post"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	ue.Type = core.CleanString(ue.Type, true /* lower */)
	ue.Date = core.CleanString(ue.Date)
	ue.StartTime = core.CleanString(ue.StartTime)
	ue.Title = core.CleanString(ue.Title)
	return validate.Struct(ue)
}

type QueryFilter struct {
	Type string    `query:"type"`
	From time.Time `query:"from"`
	To   time.Time `query:"to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Type == "" && qf.From.IsZero() && qf.To.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Type = core.CleanString(qf.Type, true /* lower */)
}
