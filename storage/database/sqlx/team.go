package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/team"
)

type teamRepository struct {
	repository
}

var _ team.Repository = (*teamRepository)(nil) // interface compliance check

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{newRepository(db)}
}

// trapNoRowsErr maps psql "no rows" err to team.ErrNotFound
func (repo teamRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return team.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo teamRepository) CreateTeam(ctx context.Context, t team.Team, exec ...core.DBExecutor) (team.Team, error) {
	t.ID = uuid.New().String()
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		INSERT INTO teams (id, name, season, color, created_by, created_at, updated_at)
		VALUES (:id, :name, :season, :color, :created_by, :created_at, :updated_at)`, t)
	if err != nil {
		return team.Team{}, errors.Wrap(err, "inserting team")
	}
	return t, nil
}

func (repo teamRepository) QueryTeamsByCreator(ctx context.Context, createdBy string, exec ...core.DBExecutor) ([]team.Team, error) {
	teams := make([]team.Team, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &teams, `
		SELECT * FROM teams WHERE created_by = $1 ORDER BY created_at DESC`, createdBy)
	return teams, errors.Wrap(err, "querying teams")
}

func (repo teamRepository) QueryAllTeams(ctx context.Context, exec ...core.DBExecutor) ([]team.Team, error) {
	teams := make([]team.Team, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &teams, `
		SELECT * FROM teams ORDER BY created_at DESC`)
	return teams, errors.Wrap(err, "querying teams")
}

func (repo teamRepository) GetTeamByID(ctx context.Context, id string, exec ...core.DBExecutor) (team.Team, error) {
	var t team.Team
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &t, `
		SELECT * FROM teams WHERE id = $1`, id); err != nil {
		return team.Team{}, repo.trapNoRowsErr(err, "getting team")
	}
	return t, nil
}

func (repo teamRepository) UpdateTeam(ctx context.Context, t team.Team, exec ...core.DBExecutor) (team.Team, error) {
	res, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		UPDATE teams
		SET name = :name, season = :season, color = :color, updated_at = :updated_at
		WHERE id = :id`, t)
	if err != nil {
		return team.Team{}, errors.Wrap(err, "updating team")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return team.Team{}, team.ErrNotFound
	}
	return t, nil
}

func (repo teamRepository) DeleteTeam(ctx context.Context, id string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return errors.Wrap(err, "deleting team")
}
