package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/eventdrill"
)

const pqUniqueViolation = "23505"

type eventDrillRepository struct {
	repository
}

var _ eventdrill.Repository = (*eventDrillRepository)(nil) // interface compliance check

func NewEventDrillRepository(db *sql.DB) *eventDrillRepository {
	return &eventDrillRepository{newRepository(db)}
}

func (repo eventDrillRepository) ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]eventdrill.EventDrill, error) {
	rows := make([]eventdrill.EventDrill, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &rows, `
		SELECT event_id, drill_id, "position"
		FROM event_drills
		WHERE event_id = $1
		ORDER BY "position", drill_id`, eventID)
	return rows, errors.Wrap(err, "listing event drills")
}

func (repo eventDrillRepository) UpsertMany(ctx context.Context, rows []eventdrill.EventDrill, exec ...core.DBExecutor) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, 3*len(rows))
	for i, row := range rows {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", 3*i+1, 3*i+2, 3*i+3))
		args = append(args, row.EventID, row.DrillID, row.Position)
	}
	query := fmt.Sprintf(`
		INSERT INTO event_drills (event_id, drill_id, "position")
		VALUES %s
		ON CONFLICT (event_id, drill_id) DO UPDATE SET "position" = EXCLUDED."position"`,
		strings.Join(values, ", "))

	if _, err := repo.getExec(exec).ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return eventdrill.ErrConflict
		}
		return errors.Wrap(err, "upserting event drills")
	}
	return nil
}

func (repo eventDrillRepository) DeleteOne(ctx context.Context, eventID, drillID string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `
		DELETE FROM event_drills WHERE event_id = $1 AND drill_id = $2`, eventID, drillID)
	return errors.Wrap(err, "deleting event drill")
}

func (repo eventDrillRepository) UpdatePosition(ctx context.Context, eventID, drillID string, position int, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `
		UPDATE event_drills SET "position" = $3 WHERE event_id = $1 AND drill_id = $2`,
		eventID, drillID, position)
	return errors.Wrap(err, "updating event drill position")
}

// UpdatePositions applies the whole reorder in one transaction. The event's
// rows are locked first so concurrent reorders of the same event serialize,
// and the supplied set is validated against the locked set. The unique
// (event_id, position) constraint is deferred, so intermediate duplicates
// inside the transaction never surface to readers.
func (repo eventDrillRepository) UpdatePositions(ctx context.Context, eventID string, rows []eventdrill.EventDrill) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	current := make([]string, 0, len(rows))
	if err = tx.SelectContext(ctx, &current, `
		SELECT drill_id FROM event_drills WHERE event_id = $1 FOR UPDATE`, eventID); err != nil {
		return errors.Wrap(err, "locking event drills")
	}

	if len(current) != len(rows) {
		return eventdrill.ErrSetMismatch
	}
	attached := make(map[string]struct{}, len(current))
	for _, id := range current {
		attached[id] = struct{}{}
	}
	for _, row := range rows {
		if _, ok := attached[row.DrillID]; !ok {
			return eventdrill.ErrSetMismatch
		}
	}

	for _, row := range rows {
		if err = repo.UpdatePosition(ctx, eventID, row.DrillID, row.Position, tx); err != nil {
			return err
		}
	}
	return errors.Wrap(tx.Commit(), "committing reorder")
}
