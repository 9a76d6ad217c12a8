package stats

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

type (
	Repository interface {
		// ListByEvent returns an event's performance lines.
		ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]PerformanceStat, error)
		// UpsertMany inserts-or-updates by (event_id, player_id).
		UpsertMany(ctx context.Context, rows []PerformanceStat, exec ...core.DBExecutor) error
		// TeamSummaries aggregates per-player totals and attendance rate over a
		// team's recorded events, ordered by last name.
		TeamSummaries(ctx context.Context, teamID string, exec ...core.DBExecutor) ([]PlayerSummary, error)
	}

	Service interface {
		ListByEvent(ctx context.Context, eventID string) ([]PerformanceStat, error)
		// Save bulk-upserts the grid. A player repeated in one request is
		// collapsed to their last entry.
		Save(ctx context.Context, teamID, eventID string, sr SaveRequest) error
		TeamSummaries(ctx context.Context, teamID string) ([]PlayerSummary, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) ListByEvent(ctx context.Context, eventID string) ([]PerformanceStat, error) {
	return svc.repo.ListByEvent(ctx, eventID)
}

func (svc *service) Save(ctx context.Context, teamID, eventID string, sr SaveRequest) error {
	if len(sr.Entries) == 0 {
		return nil
	}

	byPlayer := make(map[string]int, len(sr.Entries))
	rows := make([]PerformanceStat, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		row := PerformanceStat{
			TeamID:        teamID,
			EventID:       eventID,
			PlayerID:      e.PlayerID,
			Goals:         null.IntFromPtr(e.Goals),
			Assists:       null.IntFromPtr(e.Assists),
			MinutesPlayed: null.IntFromPtr(e.MinutesPlayed),
			Rating:        null.Float64FromPtr(e.Rating),
			Notes:         null.NewString(e.Notes, e.Notes != ""),
		}
		if idx, seen := byPlayer[e.PlayerID]; seen {
			rows[idx] = row
			continue
		}
		byPlayer[e.PlayerID] = len(rows)
		rows = append(rows, row)
	}
	return errors.Wrap(svc.repo.UpsertMany(ctx, rows), "upserting performance stats")
}

func (svc *service) TeamSummaries(ctx context.Context, teamID string) ([]PlayerSummary, error) {
	return svc.repo.TeamSummaries(ctx, teamID)
}
