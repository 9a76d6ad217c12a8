package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/team"
)

type teamRepository struct {
	db *DB
}

var _ team.Repository = (*teamRepository)(nil) // interface compliance check

func NewTeamRepository(db *DB) *teamRepository {
	return &teamRepository{db: db}
}

func (repo *teamRepository) query(match func(team.Team) bool) []team.Team {
	teams := make([]team.Team, 0, len(repo.db.teams))
	for _, t := range repo.db.teams {
		if match(*t) {
			teams = append(teams, *t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].CreatedAt.After(teams[j].CreatedAt) })
	return teams
}

func (repo *teamRepository) CreateTeam(ctx context.Context, t team.Team, _ ...core.DBExecutor) (team.Team, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t.ID = uuid.New().String()
	repo.db.teams[t.ID] = &t
	return t, nil
}

func (repo *teamRepository) QueryTeamsByCreator(ctx context.Context, createdBy string, _ ...core.DBExecutor) ([]team.Team, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(t team.Team) bool { return t.CreatedBy == createdBy }), nil
}

func (repo *teamRepository) QueryAllTeams(ctx context.Context, _ ...core.DBExecutor) ([]team.Team, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(team.Team) bool { return true }), nil
}

func (repo *teamRepository) GetTeamByID(ctx context.Context, id string, _ ...core.DBExecutor) (team.Team, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.teams[id]; ok {
		return *t, nil
	}
	return team.Team{}, team.ErrNotFound
}

func (repo *teamRepository) UpdateTeam(ctx context.Context, t team.Team, _ ...core.DBExecutor) (team.Team, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.teams[t.ID]; !ok {
		return team.Team{}, team.ErrNotFound
	}
	repo.db.teams[t.ID] = &t
	return t, nil
}

func (repo *teamRepository) DeleteTeam(ctx context.Context, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.teams, id)
	return nil
}
