package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) ListByEvent(ctx context.Context, eventID string, _ ...core.DBExecutor) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Record, 0, len(repo.db.attendance[eventID]))
	for _, rec := range repo.db.attendance[eventID] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].PlayerID < records[j].PlayerID })
	return records, nil
}

func (repo *attendanceRepository) UpsertMany(ctx context.Context, records []attendance.Record, _ ...core.DBExecutor) error {
	if len(records) == 0 {
		return nil
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	for _, rec := range records {
		byPlayer, ok := repo.db.attendance[rec.EventID]
		if !ok {
			byPlayer = make(map[string]attendance.Record)
			repo.db.attendance[rec.EventID] = byPlayer
		}
		byPlayer[rec.PlayerID] = rec
	}
	return nil
}
