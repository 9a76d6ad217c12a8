package dummydb

import (
	"context"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/eventdrill"
)

type eventDrillRepository struct {
	db *DB
}

var _ eventdrill.Repository = (*eventDrillRepository)(nil) // interface compliance check

func NewEventDrillRepository(db *DB) *eventDrillRepository {
	return &eventDrillRepository{db: db}
}

func (repo *eventDrillRepository) ListByEvent(ctx context.Context, eventID string, _ ...core.DBExecutor) ([]eventdrill.EventDrill, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return repo.listByEvent(eventID), nil
}

// listByEvent must be called with at least a read lock held.
func (repo *eventDrillRepository) listByEvent(eventID string) []eventdrill.EventDrill {
	positions := repo.db.eventDrills[eventID]
	rows := make([]eventdrill.EventDrill, 0, len(positions))
	for drillID, pos := range positions {
		rows = append(rows, eventdrill.EventDrill{EventID: eventID, DrillID: drillID, Position: pos})
	}
	eventdrill.SortByPosition(rows)
	return rows
}

func (repo *eventDrillRepository) UpsertMany(ctx context.Context, rows []eventdrill.EventDrill, _ ...core.DBExecutor) error {
	if len(rows) == 0 {
		return nil
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range rows {
		positions, ok := repo.db.eventDrills[row.EventID]
		if !ok {
			positions = make(map[string]int)
			repo.db.eventDrills[row.EventID] = positions
		}
		for drillID, pos := range positions {
			if pos == row.Position && drillID != row.DrillID {
				return eventdrill.ErrConflict
			}
		}
		positions[row.DrillID] = row.Position
	}
	return nil
}

func (repo *eventDrillRepository) DeleteOne(ctx context.Context, eventID, drillID string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.eventDrills[eventID], drillID)
	return nil
}

func (repo *eventDrillRepository) UpdatePosition(ctx context.Context, eventID, drillID string, position int, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if positions, ok := repo.db.eventDrills[eventID]; ok {
		if _, ok := positions[drillID]; ok {
			positions[drillID] = position
		}
	}
	return nil
}

func (repo *eventDrillRepository) UpdatePositions(ctx context.Context, eventID string, rows []eventdrill.EventDrill) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	positions := repo.db.eventDrills[eventID]
	if len(rows) != len(positions) {
		return eventdrill.ErrSetMismatch
	}
	for _, row := range rows {
		if _, ok := positions[row.DrillID]; !ok {
			return eventdrill.ErrSetMismatch
		}
	}
	for _, row := range rows {
		positions[row.DrillID] = row.Position
	}
	return nil
}
