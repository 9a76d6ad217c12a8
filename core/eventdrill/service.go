package eventdrill

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/drill"
)

var (
	// ErrConflict signals a caller bug: an upsert batch violated the
	// (event_id, drill_id) unique constraint.
	ErrConflict = errors.New("drill already attached")

	// ErrSetMismatch signals that a reorder request did not cover exactly the
	// event's currently attached drill set.
	ErrSetMismatch = errors.New("ordered drill ids do not match the attached set")
)

type (
	Repository interface {
		// ListByEvent returns all of an event's attachments, position ascending.
		// An unknown event yields an empty slice, not an error.
		ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]EventDrill, error)
		// UpsertMany inserts-or-updates by (event_id, drill_id). The caller is
		// responsible for deduplicating drill ids within one batch.
		UpsertMany(ctx context.Context, rows []EventDrill, exec ...core.DBExecutor) error
		// DeleteOne removes the pair if present; deleting an absent pair is a no-op.
		DeleteOne(ctx context.Context, eventID, drillID string, exec ...core.DBExecutor) error
		// UpdatePosition is a single-row position update.
		UpdatePosition(ctx context.Context, eventID, drillID string, position int, exec ...core.DBExecutor) error
		// UpdatePositions applies all position updates atomically. It locks the
		// event's attachment rows, verifies rows covers exactly the attached
		// set (ErrSetMismatch otherwise) and writes all-or-nothing, so a
		// mid-sequence failure can never leave a partially reordered plan and
		// concurrent reorders of one event serialize instead of interleaving.
		UpdatePositions(ctx context.Context, eventID string, rows []EventDrill) error
	}

	Service interface {
		// Attach appends drillIDs to the event plan in the given order.
		// Already-attached ids move to the tail.
		Attach(ctx context.Context, eventID string, drillIDs []string) error
		// Detach removes one drill from the plan without renumbering survivors.
		Detach(ctx context.Context, eventID, drillID string) error
		// Reorder rewrites the whole plan order; orderedDrillIDs must be a
		// permutation of the currently attached drill ids.
		Reorder(ctx context.Context, eventID string, orderedDrillIDs []string) error
		// OrderedDrills returns the plan's drills with metadata, in position
		// order. Attachments whose drill no longer exists are omitted.
		OrderedDrills(ctx context.Context, eventID string) ([]AttachedDrill, error)
	}

	service struct {
		repo      Repository
		drillRepo drill.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, drillRepo drill.Repository) Service {
	return &service{repo: repo, drillRepo: drillRepo}
}

func (svc *service) Attach(ctx context.Context, eventID string, drillIDs []string) error {
	if len(drillIDs) == 0 {
		return nil
	}

	current, err := svc.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return errors.Wrap(err, "listing attachments")
	}
	max := -1
	for _, ed := range current {
		if ed.Position > max {
			max = ed.Position
		}
	}

	// Assign consecutive tail positions in input order. A drill id repeated in
	// one batch keeps its later-computed slot; earlier slots become gaps,
	// which is fine since only relative order matters.
	slots := make(map[string]int, len(drillIDs))
	order := make([]string, 0, len(drillIDs))
	for _, id := range drillIDs {
		max++
		if _, seen := slots[id]; !seen {
			order = append(order, id)
		}
		slots[id] = max
	}

	rows := make([]EventDrill, 0, len(order))
	for _, id := range order {
		rows = append(rows, EventDrill{EventID: eventID, DrillID: id, Position: slots[id]})
	}
	return errors.Wrap(svc.repo.UpsertMany(ctx, rows), "upserting attachments")
}

func (svc *service) Detach(ctx context.Context, eventID, drillID string) error {
	return errors.Wrap(svc.repo.DeleteOne(ctx, eventID, drillID), "deleting attachment")
}

func (svc *service) Reorder(ctx context.Context, eventID string, orderedDrillIDs []string) error {
	rows := make([]EventDrill, 0, len(orderedDrillIDs))
	seen := make(map[string]struct{}, len(orderedDrillIDs))
	for idx, id := range orderedDrillIDs {
		if _, dup := seen[id]; dup {
			return core.NewValidationError(ErrSetMismatch, core.FieldError{Field: "drill_ids", Error: "duplicate drill id"})
		}
		seen[id] = struct{}{}
		rows = append(rows, EventDrill{EventID: eventID, DrillID: id, Position: idx})
	}

	if err := svc.repo.UpdatePositions(ctx, eventID, rows); err != nil {
		if errors.Cause(err) == ErrSetMismatch {
			return core.NewValidationError(ErrSetMismatch, core.FieldError{Field: "drill_ids", Error: ErrSetMismatch.Error()})
		}
		return errors.Wrap(err, "updating positions")
	}
	return nil
}

func (svc *service) OrderedDrills(ctx context.Context, eventID string) ([]AttachedDrill, error) {
	links, err := svc.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.Wrap(err, "listing attachments")
	}
	if len(links) == 0 {
		return []AttachedDrill{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DrillID)
	}
	drills, err := svc.drillRepo.GetDrillsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "fetching drills")
	}
	byID := make(map[string]drill.Drill, len(drills))
	for _, d := range drills {
		byID[d.ID] = d
	}

	// The batch fetch does not preserve order; re-associate and restore the
	// canonical order. Orphaned attachments (drill deleted independently) are
	// dropped silently.
	SortByPosition(links)
	out := make([]AttachedDrill, 0, len(links))
	for _, link := range links {
		d, ok := byID[link.DrillID]
		if !ok {
			continue
		}
		out = append(out, AttachedDrill{Drill: d, Position: link.Position})
	}
	return out, nil
}
