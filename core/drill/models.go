package drill

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Visibilities
const (
	VisibilityPrivate = "private"
	VisibilityTeam    = "team"
	VisibilityPublic  = "public"
)

type Drill struct {
	ID             string         `json:"id" db:"id"`
	TeamID         null.String    `json:"team_id" db:"team_id"` // null = personal drill
	Title          string         `json:"title" db:"title"`
	Category       null.String    `json:"category" db:"category"`
	Objective      null.String    `json:"objective" db:"objective"`
	AgeGroup       null.String    `json:"age_group" db:"age_group"`
	Difficulty     null.String    `json:"difficulty" db:"difficulty"`
	DurationMin    null.Int       `json:"duration_min" db:"duration_min"`
	PlayersMin     null.Int       `json:"players_min" db:"players_min"`
	PlayersMax     null.Int       `json:"players_max" db:"players_max"`
	Equipment      pq.StringArray `json:"equipment" db:"equipment"`
	Setup          null.String    `json:"setup" db:"setup"`
	Instructions   null.String    `json:"instructions" db:"instructions"`
	CoachingPoints null.String    `json:"coaching_points" db:"coaching_points"`
	Visibility     string         `json:"visibility" db:"visibility"`
	CreatedBy      string         `json:"created_by" db:"created_by"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"` // UTC
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"` // UTC
}

// NewDrill contains information needed to create a new Drill.
type NewDrill struct {
	TeamID         string   `json:"team_id" validate:"omitempty,uuid4"`
	Title          string   `json:"title" validate:"required,max=200"`
	Category       string   `json:"category"`
	Objective      string   `json:"objective"`
	AgeGroup       string   `json:"age_group"`
	Difficulty     string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	DurationMin    int      `json:"duration_min" validate:"omitempty,min=1"`
	PlayersMin     int      `json:"players_min" validate:"omitempty,min=1"`
	PlayersMax     int      `json:"players_max" validate:"omitempty,min=1,gtefield=PlayersMin"`
	Equipment      []string `json:"equipment"`
	Setup          string   `json:"setup"`
	Instructions   string   `json:"instructions"`
	CoachingPoints string   `json:"coaching_points"`
	Visibility     string   `json:"visibility" validate:"omitempty,oneof=private team public"`
}

func (nd *NewDrill) Validate(validate *validator.Validate) error {
	nd.Title = core.CleanString(nd.Title)
	nd.Category = core.CleanString(nd.Category)
	nd.Difficulty = core.CleanString(nd.Difficulty, true /* lower */)
	nd.Visibility = core.CleanString(nd.Visibility, true /* lower */)
	return validate.Struct(nd)
}

// UpdateDrill defines what information may be provided to modify an existing Drill.
// Empty fields are left unchanged.
type UpdateDrill struct {
	Title          string   `json:"title" validate:"omitempty,max=200"`
	Category       string   `json:"category"`
	Objective      string   `json:"objective"`
	AgeGroup       string   `json:"age_group"`
	Difficulty     string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	DurationMin    int      `json:"duration_min" validate:"omitempty,min=1"`
	PlayersMin     int      `json:"players_min" validate:"omitempty,min=1"`
	PlayersMax     int      `json:"players_max" validate:"omitempty,min=1"`
	Equipment      []string `json:"equipment"`
	Setup          string   `json:"setup"`
	Instructions   string   `json:"instructions"`
	CoachingPoints string   `json:"coaching_points"`
	Visibility     string   `json:"visibility" validate:"omitempty,oneof=private team public"`
}

func (ud *UpdateDrill) Validate(validate *validator.Validate) error {
	ud.Title = core.CleanString(ud.Title)
	ud.Category = core.CleanString(ud.Category)
	ud.Difficulty = core.CleanString(ud.Difficulty, true /* lower */)
	ud.Visibility = core.CleanString(ud.Visibility, true /* lower */)
	return validate.Struct(ud)
}

// sortable whitelists the columns an ordering query param may reference.
var sortable = map[string]struct{}{
	"title":      {},
	"category":   {},
	"difficulty": {},
	"created_at": {},
	"updated_at": {},
}

type QueryFilter struct {
	// Search does a case-insensitive match on title, objective or coaching points.
	Search     string `query:"search"`
	Category   string `query:"category"`
	AgeGroup   string `query:"age_group"`
	Difficulty string `query:"difficulty"`
	Visibility string `query:"visibility"`
	TeamID     string `query:"team_id"` // scope to one team's library
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`

	// AccessibleTo restricts results to drills the given coach may see:
	// team and public drills, plus their own private ones. Empty means no
	// restriction (admins). Never bound from the query string.
	AccessibleTo string `query:"-"`

	Orderings []core.DBOrdering `query:"-"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == "" && qf.AgeGroup == "" &&
		qf.Difficulty == "" && qf.Visibility == "" && qf.TeamID == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
	qf.AgeGroup = core.CleanString(qf.AgeGroup)
	qf.Difficulty = core.CleanString(qf.Difficulty, true /* lower */)
	qf.Visibility = core.CleanString(qf.Visibility, true /* lower */)

	// unknown sort fields are dropped, not errored
	orderings := qf.Orderings[:0]
	for _, ord := range qf.Orderings {
		if _, ok := sortable[ord.Field]; ok {
			orderings = append(orderings, ord)
		}
	}
	qf.Orderings = orderings
}
