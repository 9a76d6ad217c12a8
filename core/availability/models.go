package availability

import (
	"github.com/go-playground/validator/v10"
)

// Statuses
const (
	StatusComing = "coming"
	StatusMaybe  = "maybe"
	StatusOut    = "out"
)

// Record is one player's RSVP for one event.
// The (event_id, player_id) pair is unique.
type Record struct {
	EventID  string `json:"event_id" db:"event_id"`
	PlayerID string `json:"player_id" db:"player_id"`
	Status   string `json:"status" db:"status"`
}

// Counts tallies an event's RSVPs per status.
type Counts struct {
	Coming int `json:"coming"`
	Maybe  int `json:"maybe"`
	Out    int `json:"out"`
}

// Entry is one row of a bulk RSVP save.
type Entry struct {
	PlayerID string `json:"player_id" validate:"required,uuid4"`
	Status   string `json:"status" validate:"required,oneof=coming maybe out"`
}

type SaveRequest struct {
	Entries []Entry `json:"entries" validate:"required,dive"`
}

func (sr *SaveRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(sr)
}
