package team

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

var colors = []string{"slate", "red", "orange", "amber", "green", "teal", "blue", "indigo", "violet", "rose"}

type Team struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Season    null.String `json:"season" db:"season"`
	Color     string      `json:"color" db:"color"`
	CreatedBy string      `json:"created_by" db:"created_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewTeam contains information needed to create a new Team.
type NewTeam struct {
	Name   string `json:"name" validate:"required,min=2"`
	Season string `json:"season" validate:"omitempty,max=50"`
	Color  string `json:"color" validate:"omitempty,teamcolor"`
}

func (nt *NewTeam) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Season = core.CleanString(nt.Season)
	nt.Color = core.CleanString(nt.Color, true /* lower */)
	return validate.Struct(nt)
}

// UpdateTeam defines what information may be provided to modify an existing Team.
// Empty fields are left unchanged.
type UpdateTeam struct {
	Name   string `json:"name" validate:"omitempty,min=2"`
	Season string `json:"season" validate:"omitempty,max=50"`
	Color  string `json:"color" validate:"omitempty,teamcolor"`
}

func (ut *UpdateTeam) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Season = core.CleanString(ut.Season)
	ut.Color = core.CleanString(ut.Color, true /* lower */)
	return validate.Struct(ut)
}

var (
	teamColorTag  = "teamcolor"
	teamColorText = "invalid team color"
)

// InitValidators registers team-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(teamColorTag, colorValidation)
	core.RegisterCustomTranslation(validate, translator, teamColorTag, teamColorText)
}

func colorValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, c := range colors {
		if val == c {
			return true
		}
	}
	return false
}
