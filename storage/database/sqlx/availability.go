package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/availability"
)

type availabilityRepository struct {
	repository
}

var _ availability.Repository = (*availabilityRepository)(nil) // interface compliance check

func NewAvailabilityRepository(db *sql.DB) *availabilityRepository {
	return &availabilityRepository{newRepository(db)}
}

func (repo availabilityRepository) ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]availability.Record, error) {
	records := make([]availability.Record, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &records, `
		SELECT * FROM availability WHERE event_id = $1`, eventID)
	return records, errors.Wrap(err, "listing availability")
}

func (repo availabilityRepository) UpsertMany(ctx context.Context, records []availability.Record, exec ...core.DBExecutor) error {
	if len(records) == 0 {
		return nil
	}

	values := make([]string, 0, len(records))
	args := make([]interface{}, 0, 3*len(records))
	for i, rec := range records {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", 3*i+1, 3*i+2, 3*i+3))
		args = append(args, rec.EventID, rec.PlayerID, rec.Status)
	}
	query := fmt.Sprintf(`
		INSERT INTO availability (event_id, player_id, status)
		VALUES %s
		ON CONFLICT (event_id, player_id)
		DO UPDATE SET status = EXCLUDED.status`,
		strings.Join(values, ", "))

	_, err := repo.getExec(exec).ExecContext(ctx, query, args...)
	return errors.Wrap(err, "upserting availability")
}
