package availability

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
)

type (
	Repository interface {
		// ListByEvent returns an event's RSVP records.
		ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]Record, error)
		// UpsertMany inserts-or-updates by (event_id, player_id).
		UpsertMany(ctx context.Context, records []Record, exec ...core.DBExecutor) error
	}

	Service interface {
		ListByEvent(ctx context.Context, eventID string) ([]Record, error)
		// CountsByEvent tallies an event's RSVPs per status.
		CountsByEvent(ctx context.Context, eventID string) (Counts, error)
		// Save bulk-upserts RSVPs. A player repeated in one request is
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

func (svc *service) CountsByEvent(ctx context.Context, eventID string) (Counts, error) {
	records, err := svc.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return Counts{}, err
	}

	var counts Counts
	for _, rec := range records {
		switch rec.Status {
		case StatusComing:
			counts.Coming++
		case StatusMaybe:
			counts.Maybe++
		case StatusOut:
			counts.Out++
		}
	}
	return counts, nil
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
		}
		if idx, seen := byPlayer[e.PlayerID]; seen {
			records[idx] = rec
			continue
		}
		byPlayer[e.PlayerID] = len(records)
		records = append(records, rec)
	}
	return errors.Wrap(svc.repo.UpsertMany(ctx, records), "upserting availability")
}
