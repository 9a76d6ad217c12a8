package dummydb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/attendance"
	"github.com/trezcool/kocha/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *DB) *statsRepository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) ListByEvent(ctx context.Context, eventID string, _ ...core.DBExecutor) ([]stats.PerformanceStat, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]stats.PerformanceStat, 0, len(repo.db.stats[eventID]))
	for _, row := range repo.db.stats[eventID] {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PlayerID < rows[j].PlayerID })
	return rows, nil
}

func (repo *statsRepository) UpsertMany(ctx context.Context, rows []stats.PerformanceStat, _ ...core.DBExecutor) error {
	if len(rows) == 0 {
		return nil
	}

	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range rows {
		byPlayer, ok := repo.db.stats[row.EventID]
		if !ok {
			byPlayer = make(map[string]stats.PerformanceStat)
			repo.db.stats[row.EventID] = byPlayer
		}
		byPlayer[row.PlayerID] = row
	}
	return nil
}

func (repo *statsRepository) TeamSummaries(ctx context.Context, teamID string, _ ...core.DBExecutor) ([]stats.PlayerSummary, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	summaries := make([]stats.PlayerSummary, 0)
	for _, p := range repo.db.players {
		if p.TeamID != teamID {
			continue
		}
		sum := stats.PlayerSummary{
			PlayerID:  p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		}

		var ratingSum float64
		var ratingCount int
		for _, byPlayer := range repo.db.stats {
			row, ok := byPlayer[p.ID]
			if !ok || row.TeamID != teamID {
				continue
			}
			sum.Games++
			sum.Goals += row.Goals.Int
			sum.Assists += row.Assists.Int
			sum.MinutesPlayed += row.MinutesPlayed.Int
			if row.Rating.Valid {
				ratingSum += row.Rating.Float64
				ratingCount++
			}
		}
		if ratingCount > 0 {
			sum.AvgRating = null.Float64From(ratingSum / float64(ratingCount))
		}

		var recorded, attended int
		for eventID, byPlayer := range repo.db.attendance {
			ev, ok := repo.db.events[eventID]
			if !ok || ev.TeamID != teamID {
				continue
			}
			rec, ok := byPlayer[p.ID]
			if !ok {
				continue
			}
			recorded++
			switch rec.Status {
			case attendance.StatusPresent, attendance.StatusLate:
				attended++
			}
		}
		if recorded > 0 {
			sum.AttendanceRate = float64(attended) / float64(recorded)
		}

		summaries = append(summaries, sum)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastName != summaries[j].LastName {
			return summaries[i].LastName < summaries[j].LastName
		}
		return summaries[i].FirstName < summaries[j].FirstName
	})
	return summaries, nil
}
