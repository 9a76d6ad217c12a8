package eventdrill

import (
	"sort"

	"github.com/trezcool/kocha/core/drill"
)

// EventDrill links a Drill to an Event's session plan.
// The (event_id, drill_id) pair is unique; a drill is attached to an event at
// most once. Position defines the display/execution order within the event and
// is unique per event, but not necessarily contiguous: detaching never
// renumbers survivors.
type EventDrill struct {
	EventID  string `json:"event_id" db:"event_id"`
	DrillID  string `json:"drill_id" db:"drill_id"`
	Position int    `json:"position" db:"position"`
}

// AttachedDrill is the read projection of an attachment: the drill metadata
// plus its position within the event.
type AttachedDrill struct {
	drill.Drill
	Position int `json:"position"`
}

// SortByPosition establishes the canonical order: position ascending, ties
// broken by drill id so the result is deterministic.
func SortByPosition(rows []EventDrill) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].DrillID < rows[j].DrillID
	})
}
