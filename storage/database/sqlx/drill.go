package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/drill"
)

type drillRepository struct {
	repository
}

var _ drill.Repository = (*drillRepository)(nil) // interface compliance check

func NewDrillRepository(db *sql.DB) *drillRepository {
	return &drillRepository{newRepository(db)}
}

// trapNoRowsErr maps psql "no rows" err to drill.ErrNotFound
func (repo drillRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return drill.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo drillRepository) CreateDrill(ctx context.Context, d drill.Drill, exec ...core.DBExecutor) (drill.Drill, error) {
	d.ID = uuid.New().String()
	_, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		INSERT INTO drills (id, team_id, title, category, objective, age_group, difficulty, duration_min,
		                    players_min, players_max, equipment, setup, instructions, coaching_points,
		                    visibility, created_by, created_at, updated_at)
		VALUES (:id, :team_id, :title, :category, :objective, :age_group, :difficulty, :duration_min,
		        :players_min, :players_max, :equipment, :setup, :instructions, :coaching_points,
		        :visibility, :created_by, :created_at, :updated_at)`, d)
	if err != nil {
		return drill.Drill{}, errors.Wrap(err, "inserting drill")
	}
	return d, nil
}

func (repo drillRepository) GetDrillByID(ctx context.Context, id string, exec ...core.DBExecutor) (drill.Drill, error) {
	var d drill.Drill
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &d, `
		SELECT * FROM drills WHERE id = $1`, id); err != nil {
		return drill.Drill{}, repo.trapNoRowsErr(err, "getting drill")
	}
	return d, nil
}

func (repo drillRepository) GetDrillsByIDs(ctx context.Context, ids []string, exec ...core.DBExecutor) ([]drill.Drill, error) {
	drills := make([]drill.Drill, 0, len(ids))
	if len(ids) == 0 {
		return drills, nil
	}
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &drills, `
		SELECT * FROM drills WHERE id = ANY($1)`, pq.Array(ids))
	return drills, errors.Wrap(err, "getting drills by ids")
}

func (repo drillRepository) FilterDrills(ctx context.Context, filter drill.QueryFilter, exec ...core.DBExecutor) ([]drill.Drill, error) {
	query := `SELECT * FROM drills WHERE 1 = 1`
	args := make([]interface{}, 0, 8)

	addArg := func(clause string, val interface{}) {
		args = append(args, val)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.Search != "" {
		addArg(` AND (title ILIKE $%[1]d OR objective ILIKE $%[1]d OR coaching_points ILIKE $%[1]d)`, "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		addArg(` AND category = $%d`, filter.Category)
	}
	if filter.AgeGroup != "" {
		addArg(` AND age_group = $%d`, filter.AgeGroup)
	}
	if filter.Difficulty != "" {
		addArg(` AND difficulty = $%d`, filter.Difficulty)
	}
	if filter.Visibility != "" {
		addArg(` AND visibility = $%d`, filter.Visibility)
	}
	if filter.TeamID != "" {
		addArg(` AND team_id = $%d`, filter.TeamID)
	}
	if filter.AccessibleTo != "" {
		addArg(` AND (visibility <> 'private' OR created_by = $%d)`, filter.AccessibleTo)
	}
	if len(filter.Orderings) > 0 {
		orderBy := make([]string, 0, len(filter.Orderings))
		for _, ord := range filter.Orderings {
			orderBy = append(orderBy, ord.String())
		}
		query += ` ORDER BY ` + strings.Join(orderBy, ", ")
	} else {
		query += ` ORDER BY updated_at DESC`
	}
	if filter.Limit > 0 {
		addArg(` LIMIT $%d`, filter.Limit)
	}
	if filter.Offset > 0 {
		addArg(` OFFSET $%d`, filter.Offset)
	}

	drills := make([]drill.Drill, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &drills, query, args...)
	return drills, errors.Wrap(err, "filtering drills")
}

func (repo drillRepository) UpdateDrill(ctx context.Context, d drill.Drill, exec ...core.DBExecutor) (drill.Drill, error) {
	res, err := sqlx.NamedExecContext(ctx, repo.getExec(exec), `
		UPDATE drills
		SET title = :title, category = :category, objective = :objective, age_group = :age_group,
		    difficulty = :difficulty, duration_min = :duration_min, players_min = :players_min,
		    players_max = :players_max, equipment = :equipment, setup = :setup,
		    instructions = :instructions, coaching_points = :coaching_points,
		    visibility = :visibility, updated_at = :updated_at
		WHERE id = :id`, d)
	if err != nil {
		return drill.Drill{}, errors.Wrap(err, "updating drill")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return drill.Drill{}, drill.ErrNotFound
	}
	return d, nil
}

func (repo drillRepository) DeleteDrill(ctx context.Context, id string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM drills WHERE id = $1`, id)
	return errors.Wrap(err, "deleting drill")
}
