package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event, _ ...core.DBExecutor) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	evt.ID = uuid.New().String()
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, teamID, id string, _ ...core.DBExecutor) (event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if evt, ok := repo.db.events[id]; ok && evt.TeamID == teamID {
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) FilterEvents(ctx context.Context, teamID string, filter event.QueryFilter, _ ...core.DBExecutor) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]event.Event, 0)
	for _, evt := range repo.db.events {
		if evt.TeamID != teamID {
			continue
		}
		if filter.Type != "" && evt.Type != filter.Type {
			continue
		}
		if !filter.From.IsZero() && evt.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && evt.Date.After(filter.To) {
			continue
		}
		events = append(events, *evt)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event, _ ...core.DBExecutor) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if existing, ok := repo.db.events[evt.ID]; !ok || existing.TeamID != evt.TeamID {
		return event.Event{}, event.ErrNotFound
	}
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, teamID, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if evt, ok := repo.db.events[id]; ok && evt.TeamID == teamID {
		delete(repo.db.events, id)
		delete(repo.db.eventDrills, id) // cascades like the FK
		delete(repo.db.attendance, id)
		delete(repo.db.stats, id)
	}
	return nil
}
