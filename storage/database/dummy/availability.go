package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/availability"
)

type availabilityRepository struct {
	db *DB
}

var _ availability.Repository = (*availabilityRepository)(nil) // interface compliance check

func NewAvailabilityRepository(db *DB) *availabilityRepository {
	return &availabilityRepository{db: db}
}

func (repo *availabilityRepository) ListByEvent(ctx context.Context, eventID string, _ ...core.DBExecutor) ([]availability.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]availability.Record, 0, len(repo.db.availability[eventID]))
	for _, rec := range repo.db.availability[eventID] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PlayerID < records[j].PlayerID })
	return records, nil
}

func (repo *availabilityRepository) UpsertMany(ctx context.Context, records []availability.Record, _ ...core.DBExecutor) error {
	if len(records) == 0 {
		return nil
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	for _, rec := range records {
		byPlayer, ok := repo.db.availability[rec.EventID]
		if !ok {
			byPlayer = make(map[string]availability.Record)
			repo.db.availability[rec.EventID] = byPlayer
		}
		byPlayer[rec.PlayerID] = rec
	}
	return nil
}
