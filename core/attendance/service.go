package attendance

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

type (
	Repository interface {
		// ListByEvent returns an event's attendance records.
		ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]Record, error)
		// UpsertMany inserts-or-updates by (event_id, player_id).
		UpsertMany(ctx context.Context, records []Record, exec ...core.DBExecutor) error
	}

	Service interface {
		ListByEvent(ctx context.Context, eventID string) ([]Record, error)
		// Save bulk-upserts the grid. A player repeated in one request is
		// collapsed to their last entry.
		Save(ctx context.Context, eventID string, sr SaveRequest) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) ListByEvent(ctx context.Context, eventID string) ([]Record, error) {
	return svc.repo.ListByEvent(ctx, eventID)
}

func (svc *service) Save(ctx context.Context, eventID string, sr SaveRequest) error {
	if len(sr.Entries) == 0 {
		return nil
	}

	byPlayer := make(map[string]int, len(sr.Entries))
	records := make([]Record, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		rec := Record{
			EventID:  eventID,
			PlayerID: e.PlayerID,
			Status:   e.Status,
			RPE:      null.NewInt(e.RPE, e.RPE > 0),
			Comment:  null.NewString(e.Comment, e.Comment != ""),
		}
		if idx, seen := byPlayer[e.PlayerID]; seen {
			records[idx] = rec
			continue
		}
		byPlayer[e.PlayerID] = len(records)
		records = append(records, rec)
	}
	return errors.Wrap(svc.repo.UpsertMany(ctx, records), "upserting attendance")
}
