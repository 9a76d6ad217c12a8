package attendance_test

import (
	"context"
	"testing"

	"github.com/trezcool/kocha/core/attendance"
	dummydb "github.com/trezcool/kocha/storage/database/dummy"
)

func setup(t *testing.T) (attendance.Service, attendance.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	repo := dummydb.NewAttendanceRepository(db)
	return attendance.NewService(repo), repo
}

func TestService_Save(t *testing.T) {
	ctx := context.Background()
	eventID := "event-1"

	t.Run("empty request is a no-op", func(t *testing.T) {
		svc, _ := setup(t)

		if err := svc.Save(ctx, eventID, attendance.SaveRequest{}); err != nil {
			t.Fatalf("Save() failed, %v", err)
		}
		records, err := svc.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("ListByEvent() failed, %v", err)
		}
		if len(records) != 0 {
			t.Errorf("got %d records, want 0", len(records))
		}
	})

	t.Run("bulk upsert", func(t *testing.T) {
		svc, _ := setup(t)

		err := svc.Save(ctx, eventID, attendance.SaveRequest{Entries: []attendance.Entry{
			{PlayerID: "p1", Status: attendance.StatusPresent, RPE: 7},
			{PlayerID: "p2", Status: attendance.StatusAbsent, Comment: "sick"},
		}})
		if err != nil {
			t.Fatalf("Save() failed, %v", err)
		}

		records, err := svc.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("ListByEvent() failed, %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[0].Status != attendance.StatusPresent || !records[0].RPE.Valid || records[0].RPE.Int != 7 {
			t.Errorf("unexpected record: %+v", records[0])
		}
		if records[1].Status != attendance.StatusAbsent || records[1].Comment.String != "sick" {
			t.Errorf("unexpected record: %+v", records[1])
		}

		// saving again overwrites
		err = svc.Save(ctx, eventID, attendance.SaveRequest{Entries: []attendance.Entry{
			{PlayerID: "p2", Status: attendance.StatusLate},
		}})
		if err != nil {
			t.Fatalf("Save() failed, %v", err)
		}
		records, _ = svc.ListByEvent(ctx, eventID)
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[1].Status != attendance.StatusLate {
			t.Errorf("record.Status = %s, want %s", records[1].Status, attendance.StatusLate)
		}
		if records[1].Comment.Valid {
			t.Errorf("record.Comment = %v, want cleared", records[1].Comment)
		}
	})

	t.Run("repeated player collapses to last entry", func(t *testing.T) {
		svc, _ := setup(t)

		err := svc.Save(ctx, eventID, attendance.SaveRequest{Entries: []attendance.Entry{
			{PlayerID: "p1", Status: attendance.StatusAbsent},
			{PlayerID: "p1", Status: attendance.StatusPresent, RPE: 5},
		}})
		if err != nil {
			t.Fatalf("Save() failed, %v", err)
		}

		records, err := svc.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("ListByEvent() failed, %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("got %d records, want 1", len(records))
		}
		if records[0].Status != attendance.StatusPresent {
			t.Errorf("record.Status = %s, want %s", records[0].Status, attendance.StatusPresent)
		}
	})
}
