package player

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

type Player struct {
	ID        string      `json:"id" db:"id"`
	TeamID    string      `json:"team_id" db:"team_id"`
	FirstName string      `json:"first_name" db:"first_name"`
	LastName  string      `json:"last_name" db:"last_name"`
	Position  null.String `json:"position" db:"position"`
	Jersey    null.String `json:"jersey" db:"jersey"`
	Email     null.String `json:"email" db:"email"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// NewPlayer contains information needed to add a Player to a team roster.
type NewPlayer struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Position  string `json:"position"`
	Jersey    string `json:"jersey" validate:"omitempty,max=4"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (np *NewPlayer) Validate(validate *validator.Validate) error {
	np.FirstName = core.CleanString(np.FirstName)
	np.LastName = core.CleanString(np.LastName)
	np.Position = core.CleanString(np.Position)
	np.Jersey = core.CleanString(np.Jersey)
	np.Email = core.CleanString(np.Email, true /* lower */)
	return validate.Struct(np)
}

// UpdatePlayer defines what information may be provided to modify an existing Player.
// Empty fields are left unchanged.
type UpdatePlayer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Jersey    string `json:"jersey" validate:"omitempty,max=4"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (up *UpdatePlayer) Validate(validate *validator.Validate) error {
	up.FirstName = core.CleanString(up.FirstName)
	up.LastName = core.CleanString(up.LastName)
	up.Position = core.CleanString(up.Position)
	up.Jersey = core.CleanString(up.Jersey)
	up.Email = core.CleanString(up.Email, true /* lower */)
	return validate.Struct(up)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Search == "" }

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
