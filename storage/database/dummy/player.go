package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/player"
)

type playerRepository struct {
	db *DB
}

var _ player.Repository = (*playerRepository)(nil) // interface compliance check

func NewPlayerRepository(db *DB) *playerRepository {
	return &playerRepository{db: db}
}

func (repo *playerRepository) CreatePlayer(ctx context.Context, p player.Player, _ ...core.DBExecutor) (player.Player, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = uuid.New().String()
	repo.db.players[p.ID] = &p
	return p, nil
}

func (repo *playerRepository) GetPlayerByID(ctx context.Context, teamID, id string, _ ...core.DBExecutor) (player.Player, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.players[id]; ok && p.TeamID == teamID {
		return *p, nil
	}
	return player.Player{}, player.ErrNotFound
}

func (repo *playerRepository) FilterPlayers(ctx context.Context, teamID string, filter player.QueryFilter, _ ...core.DBExecutor) ([]player.Player, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	players := make([]player.Player, 0)
	for _, p := range repo.db.players {
		if p.TeamID != teamID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.FirstName), search) &&
			!strings.Contains(strings.ToLower(p.LastName), search) &&
			!strings.Contains(strings.ToLower(p.Jersey.String), search) {
			continue
		}
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].LastName != players[j].LastName {
			return players[i].LastName < players[j].LastName
		}
		return players[i].FirstName < players[j].FirstName
	})
	return players, nil
}

func (repo *playerRepository) UpdatePlayer(ctx context.Context, p player.Player, _ ...core.DBExecutor) (player.Player, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if existing, ok := repo.db.players[p.ID]; !ok || existing.TeamID != p.TeamID {
		return player.Player{}, player.ErrNotFound
	}
	repo.db.players[p.ID] = &p
	return p, nil
}

func (repo *playerRepository) DeletePlayer(ctx context.Context, teamID, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if p, ok := repo.db.players[id]; ok && p.TeamID == teamID {
		delete(repo.db.players, id)
	}
	return nil
}
