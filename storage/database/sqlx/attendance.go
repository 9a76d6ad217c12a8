package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/attendance"
)

type attendanceRepository struct {
	repository
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sql.DB) *attendanceRepository {
	return &attendanceRepository{newRepository(db)}
}

func (repo attendanceRepository) ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &records, `
		SELECT * FROM attendance WHERE event_id = $1`, eventID)
	return records, errors.Wrap(err, "listing attendance")
}

func (repo attendanceRepository) UpsertMany(ctx context.Context, records []attendance.Record, exec ...core.DBExecutor) error {
	if len(records) == 0 {
		return nil
	}

	values := make([]string, 0, len(records))
	args := make([]interface{}, 0, 5*len(records))
	for i, rec := range records {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", 5*i+1, 5*i+2, 5*i+3, 5*i+4, 5*i+5))
		args = append(args, rec.EventID, rec.PlayerID, rec.Status, rec.RPE, rec.Comment)
	}
	query := fmt.Sprintf(`
		INSERT INTO attendance (event_id, player_id, status, rpe, comment)
		VALUES %s
		ON CONFLICT (event_id, player_id)
		DO UPDATE SET status = EXCLUDED.status, rpe = EXCLUDED.rpe, comment = EXCLUDED.comment`,
		strings.Join(values, ", "))

	_, err := repo.getExec(exec).ExecContext(ctx, query, args...)
	return errors.Wrap(err, "upserting attendance")
}
