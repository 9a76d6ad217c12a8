package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/drill"
)

type drillRepository struct {
	db *DB
}

var _ drill.Repository = (*drillRepository)(nil) // interface compliance check

func NewDrillRepository(db *DB) *drillRepository {
	return &drillRepository{db: db}
}

func (repo *drillRepository) CreateDrill(ctx context.Context, d drill.Drill, _ ...core.DBExecutor) (drill.Drill, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	d.ID = uuid.New().String()
	repo.db.drills[d.ID] = &d
	return d, nil
}

func (repo *drillRepository) GetDrillByID(ctx context.Context, id string, _ ...core.DBExecutor) (drill.Drill, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if d, ok := repo.db.drills[id]; ok {
		return *d, nil
	}
	return drill.Drill{}, drill.ErrNotFound
}

func (repo *drillRepository) GetDrillsByIDs(ctx context.Context, ids []string, _ ...core.DBExecutor) ([]drill.Drill, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	drills := make([]drill.Drill, 0, len(ids))
	for _, id := range ids {
		if d, ok := repo.db.drills[id]; ok {
			drills = append(drills, *d)
		}
	}
	// shuffle-free but unordered semantics: callers must not rely on input order
	sort.Slice(drills, func(i, j int) bool { return drills[i].ID < drills[j].ID })
	return drills, nil
}

func (repo *drillRepository) FilterDrills(ctx context.Context, filter drill.QueryFilter, _ ...core.DBExecutor) ([]drill.Drill, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	drills := make([]drill.Drill, 0)
	for _, d := range repo.db.drills {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Title), search) &&
			!strings.Contains(strings.ToLower(d.Objective.String), search) &&
			!strings.Contains(strings.ToLower(d.CoachingPoints.String), search) {
			continue
		}
		if filter.Category != "" && d.Category.String != filter.Category {
			continue
		}
		if filter.AgeGroup != "" && d.AgeGroup.String != filter.AgeGroup {
			continue
		}
		if filter.Difficulty != "" && d.Difficulty.String != filter.Difficulty {
			continue
		}
		if filter.Visibility != "" && d.Visibility != filter.Visibility {
			continue
		}
		if filter.TeamID != "" && d.TeamID.String != filter.TeamID {
			continue
		}
		if filter.AccessibleTo != "" && d.Visibility == drill.VisibilityPrivate && d.CreatedBy != filter.AccessibleTo {
			continue
		}
		drills = append(drills, *d)
	}
	if len(filter.Orderings) > 0 {
		sortDrills(drills, filter.Orderings[0])
	} else {
		sort.Slice(drills, func(i, j int) bool { return drills[i].UpdatedAt.After(drills[j].UpdatedAt) })
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(drills) {
			return []drill.Drill{}, nil
		}
		drills = drills[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(drills) {
		drills = drills[:filter.Limit]
	}
	return drills, nil
}

// sortDrills applies the first requested ordering; secondary sort keys are a
// SQL nicety the in-memory implementation does not need.
func sortDrills(drills []drill.Drill, ord core.DBOrdering) {
	key := func(d drill.Drill) string {
		switch ord.Field {
		case "title":
			return d.Title
		case "category":
			return d.Category.String
		case "difficulty":
			return d.Difficulty.String
		case "created_at":
			return d.CreatedAt.Format(time.RFC3339Nano)
		default:
			return d.UpdatedAt.Format(time.RFC3339Nano)
		}
	}
	sort.Slice(drills, func(i, j int) bool {
		if ord.Ascending {
			return key(drills[i]) < key(drills[j])
		}
		return key(drills[i]) > key(drills[j])
	})
}

func (repo *drillRepository) UpdateDrill(ctx context.Context, d drill.Drill, _ ...core.DBExecutor) (drill.Drill, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.drills[d.ID]; !ok {
		return drill.Drill{}, drill.ErrNotFound
	}
	repo.db.drills[d.ID] = &d
	return d, nil
}

func (repo *drillRepository) DeleteDrill(ctx context.Context, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.drills, id)
	return nil
}
