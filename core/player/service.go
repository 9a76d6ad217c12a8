package player

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

var (
	ErrNotFound = errors.New("player not found")
)

type (
	Repository interface {
		CreatePlayer(ctx context.Context, p Player, exec ...core.DBExecutor) (Player, error)
		GetPlayerByID(ctx context.Context, teamID, id string, exec ...core.DBExecutor) (Player, error)
		// FilterPlayers returns a team's roster; QueryFilter.Search does a
		// case-insensitive match on first name, last name or jersey.
		FilterPlayers(ctx context.Context, teamID string, filter QueryFilter, exec ...core.DBExecutor) ([]Player, error)
		UpdatePlayer(ctx context.Context, p Player, exec ...core.DBExecutor) (Player, error)
		DeletePlayer(ctx context.Context, teamID, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, teamID string, np NewPlayer) (Player, error)
		GetByID(ctx context.Context, teamID, id string) (Player, error)
		Filter(ctx context.Context, teamID string, filter QueryFilter) ([]Player, error)
		Update(ctx context.Context, teamID, id string, up UpdatePlayer) (Player, error)
		Delete(ctx context.Context, teamID, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, teamID string, np NewPlayer) (Player, error) {
	now := time.Now().UTC()
	p := Player{
		TeamID:    teamID,
		FirstName: np.FirstName,
		LastName:  np.LastName,
		Position:  null.NewString(np.Position, np.Position != ""),
		Jersey:    null.NewString(np.Jersey, np.Jersey != ""),
		Email:     null.NewString(np.Email, np.Email != ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreatePlayer(ctx, p)
}

func (svc *service) GetByID(ctx context.Context, teamID, id string) (Player, error) {
	return svc.repo.GetPlayerByID(ctx, teamID, id)
}

func (svc *service) Filter(ctx context.Context, teamID string, filter QueryFilter) ([]Player, error) {
	return svc.repo.FilterPlayers(ctx, teamID, filter)
}

func (svc *service) Update(ctx context.Context, teamID, id string, up UpdatePlayer) (Player, error) {
	p, err := svc.repo.GetPlayerByID(ctx, teamID, id)
	if err != nil {
		return Player{}, err
	}
	if up.FirstName != "" {
		p.FirstName = up.FirstName
	}
	if up.LastName != "" {
		p.LastName = up.LastName
	}
	if up.Position != "" {
		p.Position = null.StringFrom(up.Position)
	}
	if up.Jersey != "" {
		p.Jersey = null.StringFrom(up.Jersey)
	}
	if up.Email != "" {
		p.Email = null.StringFrom(up.Email)
	}
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePlayer(ctx, p)
}

func (svc *service) Delete(ctx context.Context, teamID, id string) error {
	return svc.repo.DeletePlayer(ctx, teamID, id)
}
