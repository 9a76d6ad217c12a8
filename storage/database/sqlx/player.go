package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/player"
)

type playerRepository struct {
	repository
}

var _ player.Repository = (*playerRepository)(nil) // interface compliance check

func NewPlayerRepository(db *sql.DB) *playerRepository {
	return &playerRepository{newRepository(db)}
}

// trapNoRowsErr maps psql "no rows" err to player.ErrNotFound
func (repo playerRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return player.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo playerRepository) CreatePlayer(ctx context.Context, p player.Player, exec ...core.DBExecutor) (player.Player, error) {
	p.ID = uuid.New().String()
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		INSERT INTO players (id, team_id, first_name, last_name, position, jersey, email, created_at, updated_at)
		VALUES (:id, :team_id, :first_name, :last_name, :position, :jersey, :email, :created_at, :updated_at)`, p)
	if err != nil {
		return player.Player{}, errors.Wrap(err, "inserting player")
	}
	return p, nil
}

func (repo playerRepository) GetPlayerByID(ctx context.Context, teamID, id string, exec ...core.DBExecutor) (player.Player, error) {
	var p player.Player
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &p, `
		SELECT * FROM players WHERE team_id = $1 AND id = $2`, teamID, id); err != nil {
		return player.Player{}, repo.trapNoRowsErr(err, "getting player")
	}
	return p, nil
}

func (repo playerRepository) FilterPlayers(ctx context.Context, teamID string, filter player.QueryFilter, exec ...core.DBExecutor) ([]player.Player, error) {
	query := `SELECT * FROM players WHERE team_id = $1`
	args := []interface{}{teamID}
	if filter.Search != "" {
		query += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR jersey ILIKE $2)`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY last_name, first_name`

	players := make([]player.Player, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &players, query, args...)
	return players, errors.Wrap(err, "filtering players")
}

func (repo playerRepository) UpdatePlayer(ctx context.Context, p player.Player, exec ...core.DBExecutor) (player.Player, error) {
	res, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		UPDATE players
		SET first_name = :first_name, last_name = :last_name, position = :position,
		    jersey = :jersey, email = :email, updated_at = :updated_at
		WHERE team_id = :team_id AND id = :id`, p)
	if err != nil {
		return player.Player{}, errors.Wrap(err, "updating player")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return player.Player{}, player.ErrNotFound
	}
	return p, nil
}

func (repo playerRepository) DeletePlayer(ctx context.Context, teamID, id string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM players WHERE team_id = $1 AND id = $2`, teamID, id)
	return errors.Wrap(err, "deleting player")
}
