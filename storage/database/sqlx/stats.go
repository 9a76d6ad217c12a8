package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/stats"
)

type statsRepository struct {
	repository
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(db *sql.DB) *statsRepository {
	return &statsRepository{newRepository(db)}
}

func (repo statsRepository) ListByEvent(ctx context.Context, eventID string, exec ...core.DBExecutor) ([]stats.PerformanceStat, error) {
	rows := make([]stats.PerformanceStat, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &rows, `
		SELECT * FROM performance_stats WHERE event_id = $1`, eventID)
	return rows, errors.Wrap(err, "listing performance stats")
}

func (repo statsRepository) UpsertMany(ctx context.Context, rows []stats.PerformanceStat, exec ...core.DBExecutor) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([]string, 0, len(rows))
	args := make([]interface{}, 0, 8*len(rows))
	for i, row := range rows {
		ph := make([]string, 0, 8)
		for j := 1; j <= 8; j++ {
			ph = append(ph, fmt.Sprintf("$%d", 8*i+j))
		}
		values = append(values, "("+strings.Join(ph, ", ")+")")
		args = append(args, row.TeamID, row.EventID, row.PlayerID, row.Goals, row.Assists, row.MinutesPlayed, row.Rating, row.Notes)
	}
	query := fmt.Sprintf(`
		INSERT INTO performance_stats (team_id, event_id, player_id, goals, assists, minutes_played, rating, notes)
		VALUES %s
		ON CONFLICT (event_id, player_id)
		DO UPDATE SET goals = EXCLUDED.goals, assists = EXCLUDED.assists,
		              minutes_played = EXCLUDED.minutes_played, rating = EXCLUDED.rating,
		              notes = EXCLUDED.notes`,
		strings.Join(values, ", "))

	_, err := repo.getExec(exec).ExecContext(ctx, query, args...)
	return errors.Wrap(err, "upserting performance stats")
}

func (repo statsRepository) TeamSummaries(ctx context.Context, teamID string, exec ...core.DBExecutor) ([]stats.PlayerSummary, error) {
	summaries := make([]stats.PlayerSummary, 0)
	err := sqlx.SelectContext(ctx, repo.getExec(exec), &summaries, `
		SELECT p.id AS player_id,
		       p.first_name,
		       p.last_name,
		       COUNT(ps.event_id)                  AS games,
		       COALESCE(SUM(ps.goals), 0)          AS goals,
		       COALESCE(SUM(ps.assists), 0)        AS assists,
		       COALESCE(SUM(ps.minutes_played), 0) AS minutes_played,
		       AVG(ps.rating)                      AS avg_rating,
		       COALESCE(att.rate, 0)               AS attendance_rate
		FROM players p
		LEFT JOIN performance_stats ps ON ps.player_id = p.id AND ps.team_id = $1
		LEFT JOIN (
			SELECT a.player_id,
			       AVG(CASE WHEN a.status IN ('present', 'late') THEN 1.0 ELSE 0.0 END) AS rate
			FROM attendance a
			JOIN events e ON e.id = a.event_id
			WHERE e.team_id = $1
			GROUP BY a.player_id
		) att ON att.player_id = p.id
		WHERE p.team_id = $1
		GROUP BY p.id, p.first_name, p.last_name, att.rate
		ORDER BY p.last_name, p.first_name`, teamID)
	return summaries, errors.Wrap(err, "querying team summaries")
}
