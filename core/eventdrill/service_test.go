package eventdrill_test

import (
	"context"
	"testing"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/drill"
	"github.com/trezcool/kocha/core/eventdrill"
	dummydb "github.com/trezcool/kocha/storage/database/dummy"
)

type testEnv struct {
	svc       eventdrill.Service
	repo      eventdrill.Repository
	drillRepo drill.Repository
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	repo := dummydb.NewEventDrillRepository(db)
	drillRepo := dummydb.NewDrillRepository(db)
	return &testEnv{
		svc:       eventdrill.NewService(repo, drillRepo),
		repo:      repo,
		drillRepo: drillRepo,
	}
}

func (env *testEnv) createDrill(t *testing.T, title string) drill.Drill {
	t.Helper()

	d, err := env.drillRepo.CreateDrill(context.Background(), drill.Drill{
		Title:      title,
		Visibility: drill.VisibilityPrivate,
		CreatedBy:  "coach-1",
	})
	if err != nil {
		t.Fatalf("CreateDrill() failed, %v", err)
	}
	return d
}

func (env *testEnv) positions(t *testing.T, eventID string) map[string]int {
	t.Helper()

	rows, err := env.repo.ListByEvent(context.Background(), eventID)
	if err != nil {
		t.Fatalf("ListByEvent() failed, %v", err)
	}
	byDrill := make(map[string]int, len(rows))
	for _, row := range rows {
		byDrill[row.DrillID] = row.Position
	}
	return byDrill
}

func assertPlan(t *testing.T, got []eventdrill.AttachedDrill, wantIDs []string, wantPositions []int) {
	t.Helper()

	if len(got) != len(wantIDs) {
		t.Fatalf("got %d drills, want %d", len(got), len(wantIDs))
	}
	for i, ad := range got {
		if ad.ID != wantIDs[i] {
			t.Errorf("drill[%d].ID = %s, want %s", i, ad.ID, wantIDs[i])
		}
		if ad.Position != wantPositions[i] {
			t.Errorf("drill[%d].Position = %d, want %d", i, ad.Position, wantPositions[i])
		}
	}
}

func TestService_Attach(t *testing.T) {
	ctx := context.Background()
	eventID := "event-1"

	t.Run("first attach starts at zero", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		want := map[string]int{a.ID: 0, b.ID: 1}
		got := env.positions(t, eventID)
		for id, pos := range want {
			if got[id] != pos {
				t.Errorf("position[%s] = %d, want %d", id, got[id], pos)
			}
		}
	})

	t.Run("subsequent attach appends after current max", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")
		c := env.createDrill(t, "Pressing")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}
		if err := env.svc.Attach(ctx, eventID, []string{c.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		if got := env.positions(t, eventID); got[c.ID] != 2 {
			t.Errorf("position[%s] = %d, want 2", c.ID, got[c.ID])
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		env := setup(t)

		if err := env.svc.Attach(ctx, eventID, nil); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}
		if got := env.positions(t, eventID); len(got) != 0 {
			t.Errorf("got %d attachments, want 0", len(got))
		}
	})

	t.Run("duplicate id in one batch keeps its later slot", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID, a.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		got := env.positions(t, eventID)
		if len(got) != 2 {
			t.Fatalf("got %d attachments, want 2", len(got))
		}
		// a was seen at slots 0 and 2; the later one wins, slot 0 stays a gap
		if got[a.ID] != 2 {
			t.Errorf("position[%s] = %d, want 2", a.ID, got[a.ID])
		}
		if got[b.ID] != 1 {
			t.Errorf("position[%s] = %d, want 1", b.ID, got[b.ID])
		}
	})

	t.Run("re-attach moves drill to the tail", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}
		if err := env.svc.Attach(ctx, eventID, []string{a.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		got := env.positions(t, eventID)
		if len(got) != 2 {
			t.Fatalf("got %d attachments, want 2", len(got))
		}
		if got[a.ID] != 2 {
			t.Errorf("position[%s] = %d, want 2", a.ID, got[a.ID])
		}
		if got[b.ID] != 1 {
			t.Errorf("position[%s] = %d, want 1", b.ID, got[b.ID])
		}
	})
}

func TestService_Detach(t *testing.T) {
	ctx := context.Background()
	eventID := "event-1"

	env := setup(t)
	a := env.createDrill(t, "Rondo")
	b := env.createDrill(t, "Shooting")
	c := env.createDrill(t, "Pressing")

	if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID, c.ID}); err != nil {
		t.Fatalf("Attach() failed, %v", err)
	}
	if err := env.svc.Detach(ctx, eventID, b.ID); err != nil {
		t.Fatalf("Detach() failed, %v", err)
	}

	// survivors keep their positions, the gap stays
	got := env.positions(t, eventID)
	if len(got) != 2 {
		t.Fatalf("got %d attachments, want 2", len(got))
	}
	if got[a.ID] != 0 {
		t.Errorf("position[%s] = %d, want 0", a.ID, got[a.ID])
	}
	if got[c.ID] != 2 {
		t.Errorf("position[%s] = %d, want 2", c.ID, got[c.ID])
	}

	// detaching an absent pair is a no-op
	if err := env.svc.Detach(ctx, eventID, b.ID); err != nil {
		t.Fatalf("Detach() failed, %v", err)
	}
	if err := env.svc.Detach(ctx, "unknown-event", a.ID); err != nil {
		t.Fatalf("Detach() failed, %v", err)
	}
}

func TestService_Reorder(t *testing.T) {
	ctx := context.Background()
	eventID := "event-1"

	t.Run("permutation rewrites positions as indexes", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")
		c := env.createDrill(t, "Pressing")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID, c.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}
		if err := env.svc.Reorder(ctx, eventID, []string{c.ID, a.ID, b.ID}); err != nil {
			t.Fatalf("Reorder() failed, %v", err)
		}

		got := env.positions(t, eventID)
		want := map[string]int{c.ID: 0, a.ID: 1, b.ID: 2}
		for id, pos := range want {
			if got[id] != pos {
				t.Errorf("position[%s] = %d, want %d", id, got[id], pos)
			}
		}
	})

	t.Run("missing drill id is rejected", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		err := env.svc.Reorder(ctx, eventID, []string{a.ID})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Fatalf("Reorder() error = %v, want *core.ValidationError", err)
		}

		// positions untouched
		got := env.positions(t, eventID)
		if got[a.ID] != 0 || got[b.ID] != 1 {
			t.Errorf("positions changed after rejected reorder: %v", got)
		}
	})

	t.Run("unknown drill id is rejected", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		err := env.svc.Reorder(ctx, eventID, []string{"not-attached"})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Fatalf("Reorder() error = %v, want *core.ValidationError", err)
		}
	})

	t.Run("duplicate drill id is rejected", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		err := env.svc.Reorder(ctx, eventID, []string{a.ID, a.ID})
		if _, ok := err.(*core.ValidationError); !ok {
			t.Fatalf("Reorder() error = %v, want *core.ValidationError", err)
		}
	})
}

func TestService_OrderedDrills(t *testing.T) {
	ctx := context.Background()
	eventID := "event-1"

	t.Run("empty plan yields empty slice", func(t *testing.T) {
		env := setup(t)

		got, err := env.svc.OrderedDrills(ctx, eventID)
		if err != nil {
			t.Fatalf("OrderedDrills() failed, %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("OrderedDrills() = %v, want empty slice", got)
		}
	})

	t.Run("drills come back in position order", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")
		c := env.createDrill(t, "Pressing")

		if err := env.svc.Attach(ctx, eventID, []string{b.ID, c.ID, a.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}

		got, err := env.svc.OrderedDrills(ctx, eventID)
		if err != nil {
			t.Fatalf("OrderedDrills() failed, %v", err)
		}
		assertPlan(t, got, []string{b.ID, c.ID, a.ID}, []int{0, 1, 2})
	})

	t.Run("orphaned attachments are omitted", func(t *testing.T) {
		env := setup(t)
		a := env.createDrill(t, "Rondo")
		b := env.createDrill(t, "Shooting")

		if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Attach() failed, %v", err)
		}
		// delete the drill behind the attachment's back
		if err := env.drillRepo.DeleteDrill(ctx, a.ID); err != nil {
			t.Fatalf("DeleteDrill() failed, %v", err)
		}

		got, err := env.svc.OrderedDrills(ctx, eventID)
		if err != nil {
			t.Fatalf("OrderedDrills() failed, %v", err)
		}
		assertPlan(t, got, []string{b.ID}, []int{1})
	})
}

// TestService_PlanLifecycle runs a full session-planning scenario end to end.
func TestService_PlanLifecycle(t *testing.T) {
	ctx := context.Background()
	eventID := "event-1"

	env := setup(t)
	a := env.createDrill(t, "Rondo")
	b := env.createDrill(t, "Shooting")
	c := env.createDrill(t, "Pressing")

	if err := env.svc.Attach(ctx, eventID, []string{a.ID, b.ID}); err != nil {
		t.Fatalf("Attach() failed, %v", err)
	}
	if err := env.svc.Attach(ctx, eventID, []string{c.ID}); err != nil {
		t.Fatalf("Attach() failed, %v", err)
	}

	got, err := env.svc.OrderedDrills(ctx, eventID)
	if err != nil {
		t.Fatalf("OrderedDrills() failed, %v", err)
	}
	assertPlan(t, got, []string{a.ID, b.ID, c.ID}, []int{0, 1, 2})

	if err := env.svc.Reorder(ctx, eventID, []string{b.ID, c.ID, a.ID}); err != nil {
		t.Fatalf("Reorder() failed, %v", err)
	}
	if err := env.svc.Detach(ctx, eventID, b.ID); err != nil {
		t.Fatalf("Detach() failed, %v", err)
	}

	got, err = env.svc.OrderedDrills(ctx, eventID)
	if err != nil {
		t.Fatalf("OrderedDrills() failed, %v", err)
	}
	assertPlan(t, got, []string{c.ID, a.ID}, []int{1, 2})
}
