package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/event"
)

type eventRepository struct {
	repository
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sql.DB) *eventRepository {
	return &eventRepository{newRepository(db)}
}

// trapNoRowsErr maps psql "no rows" err to event.ErrNotFound
func (repo eventRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return event.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo eventRepository) CreateEvent(ctx context.Context, evt event.Event, exec ...core.DBExecutor) (event.Event, error) {
	evt.ID = uuid.New().String()
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		INSERT INTO events (id, team_id, type, date, start_time, title, notes_pre, notes_post, created_at, updated_at)
		VALUES (:id, :team_id, :type, :date, :start_time, :title, :notes_pre, :notes_post, :created_at, :updated_at)`, evt)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return evt, nil
}

func (repo eventRepository) GetEventByID(ctx context.Context, teamID, id string, exec ...core.DBExecutor) (event.Event, error) {
	var evt event.Event
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &evt, `
		SELECT * FROM events WHERE team_id = $1 AND id = $2`, teamID, id); err != nil {
		return event.Event{}, repo.trapNoRowsErr(err, "getting event")
	}
	return evt, nil
}

func (repo eventRepository) FilterEvents(ctx context.Context, teamID string, filter event.QueryFilter, exec ...core.DBExecutor) ([]event.Event, error) {
	query := `SELECT * FROM events WHERE team_id = $1`
	args := []interface{}{teamID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date, start_time NULLS LAST`

	events := make([]event.Event, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &events, query, args...)
	return events, errors.Wrap(err, "filtering events")
}

func (repo eventRepository) UpdateEvent(ctx context.Context, evt event.Event, exec ...core.DBExecutor) (event.Event, error) {
	res, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		UPDATE events
		SET type = :type, date = :date, start_time = :start_time, title = :title,
		    notes_pre = :notes_pre, notes_post = :notes_post, updated_at = :updated_at
		WHERE team_id = :team_id AND id = :id`, evt)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return evt, nil
}

func (repo eventRepository) DeleteEvent(ctx context.Context, teamID, id string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM events WHERE team_id = $1 AND id = $2`, teamID, id)
	return errors.Wrap(err, "deleting event")
}
