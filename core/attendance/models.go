package attendance

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

// Record is one player's attendance entry for one event.
// The (event_id, player_id) pair is unique.
type Record struct {
	EventID  string      `json:"event_id" db:"event_id"`
	PlayerID string      `json:"player_id" db:"player_id"`
	Status   string      `json:"status" db:"status"`
	RPE      null.Int    `json:"rpe" db:"rpe"` // rate of perceived exertion, 1-10
	Comment  null.String `json:"comment" db:"comment"`
}

// Entry is one row of a bulk attendance save.
type Entry struct {
	PlayerID string `json:"player_id" validate:"required,uuid4"`
	Status   string `json:"status" validate:"required,oneof=present absent late excused"`
	RPE      int    `json:"rpe" validate:"omitempty,min=1,max=10"`
	Comment  string `json:"comment"`
}

type SaveRequest struct {
	Entries []Entry `json:"entries" validate:"required,dive"`
}

func (sr *SaveRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(sr)
}
