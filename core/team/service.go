package team

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

var (
	ErrNotFound = errors.New("team not found")
)

type (
	Repository interface {
		CreateTeam(ctx context.Context, t Team, exec ...core.DBExecutor) (Team, error)
		QueryTeamsByCreator(ctx context.Context, createdBy string, exec ...core.DBExecutor) ([]Team, error)
		QueryAllTeams(ctx context.Context, exec ...core.DBExecutor) ([]Team, error)
		GetTeamByID(ctx context.Context, id string, exec ...core.DBExecutor) (Team, error)
		UpdateTeam(ctx context.Context, t Team, exec ...core.DBExecutor) (Team, error)
		DeleteTeam(ctx context.Context, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, nt NewTeam, createdBy string) (Team, error)
		Query(ctx context.Context, createdBy string, all bool) ([]Team, error)
		GetByID(ctx context.Context, id string) (Team, error)
		Update(ctx context.Context, id string, ut UpdateTeam) (Team, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, nt NewTeam, createdBy string) (Team, error) {
	now := time.Now().UTC()
	color := nt.Color
	if color == "" {
		color = "slate"
	}
	t := Team{
		Name:      nt.Name,
		Season:    null.NewString(nt.Season, nt.Season != ""),
		Color:     color,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateTeam(ctx, t)
}

func (svc *service) Query(ctx context.Context, createdBy string, all bool) ([]Team, error) {
	if all {
		return svc.repo.QueryAllTeams(ctx)
	}
	return svc.repo.QueryTeamsByCreator(ctx, createdBy)
}

func (svc *service) GetByID(ctx context.Context, id string) (Team, error) {
	return svc.repo.GetTeamByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id string, ut UpdateTeam) (Team, error) {
	t, err := svc.repo.GetTeamByID(ctx, id)
	if err != nil {
		return Team{}, err
	}
	if ut.Name != "" {
		t.Name = ut.Name
	}
	if ut.Season != "" {
		t.Season = null.StringFrom(ut.Season)
	}
	if ut.Color != "" {
		t.Color = ut.Color
	}
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeam(ctx, t)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteTeam(ctx, id)
}
