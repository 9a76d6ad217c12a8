package drill

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/kocha/core"
)

var (
	ErrNotFound = errors.New("drill not found")
)

type (
	Repository interface {
		CreateDrill(ctx context.Context, d Drill, exec ...core.DBExecutor) (Drill, error)
		GetDrillByID(ctx context.Context, id string, exec ...core.DBExecutor) (Drill, error)
		// GetDrillsByIDs batch-fetches drills by id; order of the result is unspecified
		// and missing ids are silently skipped.
		GetDrillsByIDs(ctx context.Context, ids []string, exec ...core.DBExecutor) ([]Drill, error)
		// FilterDrills applies AND on the available QueryFilter fields,
		// ordered by updated_at descending.
		FilterDrills(ctx context.Context, filter QueryFilter, exec ...core.DBExecutor) ([]Drill, error)
		UpdateDrill(ctx context.Context, d Drill, exec ...core.DBExecutor) (Drill, error)
		DeleteDrill(ctx context.Context, id string, exec ...core.DBExecutor) error
	}

	Service interface {
		Create(ctx context.Context, nd NewDrill, createdBy string) (Drill, error)
		GetByID(ctx context.Context, id string) (Drill, error)
		Filter(ctx context.Context, filter QueryFilter) ([]Drill, error)
		Update(ctx context.Context, id string, ud UpdateDrill) (Drill, error)
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

func (svc *service) Create(ctx context.Context, nd NewDrill, createdBy string) (Drill, error) {
	now := time.Now().UTC()
	visibility := nd.Visibility
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	d := Drill{
		TeamID:         null.NewString(nd.TeamID, nd.TeamID != ""),
		Title:          nd.Title,
		Category:       null.NewString(nd.Category, nd.Category != ""),
		Objective:      null.NewString(nd.Objective, nd.Objective != ""),
		AgeGroup:       null.NewString(nd.AgeGroup, nd.AgeGroup != ""),
		Difficulty:     null.NewString(nd.Difficulty, nd.Difficulty != ""),
		DurationMin:    null.NewInt(nd.DurationMin, nd.DurationMin > 0),
		PlayersMin:     null.NewInt(nd.PlayersMin, nd.PlayersMin > 0),
		PlayersMax:     null.NewInt(nd.PlayersMax, nd.PlayersMax > 0),
		Equipment:      nd.Equipment,
		Setup:          null.NewString(nd.Setup, nd.Setup != ""),
		Instructions:   null.NewString(nd.Instructions, nd.Instructions != ""),
		CoachingPoints: null.NewString(nd.CoachingPoints, nd.CoachingPoints != ""),
		Visibility:     visibility,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateDrill(ctx, d)
}

func (svc *service) GetByID(ctx context.Context, id string) (Drill, error) {
	return svc.repo.GetDrillByID(ctx, id)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter) ([]Drill, error) {
	return svc.repo.FilterDrills(ctx, filter)
}

func (svc *service) Update(ctx context.Context, id string, ud UpdateDrill) (Drill, error) {
	d, err := svc.repo.GetDrillByID(ctx, id)
	if err != nil {
		return Drill{}, err
	}
	if ud.Title != "" {
		d.Title = ud.Title
	}
	if ud.Category != "" {
		d.Category = null.StringFrom(ud.Category)
	}
	if ud.Objective != "" {
		d.Objective = null.StringFrom(ud.Objective)
	}
	if ud.AgeGroup != "" {
		d.AgeGroup = null.StringFrom(ud.AgeGroup)
	}
	if ud.Difficulty != "" {
		d.Difficulty = null.StringFrom(ud.Difficulty)
	}
	if ud.DurationMin > 0 {
		d.DurationMin = null.IntFrom(ud.DurationMin)
	}
	if ud.PlayersMin > 0 {
		d.PlayersMin = null.IntFrom(ud.PlayersMin)
	}
	if ud.PlayersMax > 0 {
		d.PlayersMax = null.IntFrom(ud.PlayersMax)
	}
	if ud.Equipment != nil {
		d.Equipment = ud.Equipment
	}
	if ud.Setup != "" {
		d.Setup = null.StringFrom(ud.Setup)
	}
	if ud.Instructions != "" {
		d.Instructions = null.StringFrom(ud.Instructions)
	}
	if ud.CoachingPoints != "" {
		d.CoachingPoints = null.StringFrom(ud.CoachingPoints)
	}
	if ud.Visibility != "" {
		d.Visibility = ud.Visibility
	}
	d.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateDrill(ctx, d)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteDrill(ctx, id)
}
