package stats

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// PerformanceStat is one player's performance line for one event.
// The (event_id, player_id) pair is unique.
type PerformanceStat struct {
	TeamID        string       `json:"team_id" db:"team_id"`
	EventID       string       `json:"event_id" db:"event_id"`
	PlayerID      string       `json:"player_id" db:"player_id"`
	Goals         null.Int     `json:"goals" db:"goals"`
	Assists       null.Int     `json:"assists" db:"assists"`
	MinutesPlayed null.Int     `json:"minutes_played" db:"minutes_played"`
	Rating        null.Float64 `json:"rating" db:"rating"` // 0-10
	Notes         null.String  `json:"notes" db:"notes"`
}

// Entry is one row of a bulk performance save. Pointer fields distinguish
// "leave empty" from zero values.
type Entry struct {
	PlayerID      string   `json:"player_id" validate:"required,uuid4"`
	Goals         *int     `json:"goals" validate:"omitempty,min=0"`
	Assists       *int     `json:"assists" validate:"omitempty,min=0"`
	MinutesPlayed *int     `json:"minutes_played" validate:"omitempty,min=0"`
	Rating        *float64 `json:"rating" validate:"omitempty,min=0,max=10"`
	Notes         string   `json:"notes"`
}

type SaveRequest struct {
	Entries []Entry `json:"entries" validate:"required,dive"`
}

func (sr *SaveRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(sr)
}

// PlayerSummary is a per-player season aggregate over a team's events.
type PlayerSummary struct {
	PlayerID       string       `json:"player_id" db:"player_id"`
	FirstName      string       `json:"first_name" db:"first_name"`
	LastName       string       `json:"last_name" db:"last_name"`
	Games          int          `json:"games" db:"games"`
	Goals          int          `json:"goals" db:"goals"`
	Assists        int          `json:"assists" db:"assists"`
	MinutesPlayed  int          `json:"minutes_played" db:"minutes_played"`
	AvgRating      null.Float64 `json:"avg_rating" db:"avg_rating"`
	AttendanceRate float64      `json:"attendance_rate" db:"attendance_rate"` // 0-1 over recorded events
}
