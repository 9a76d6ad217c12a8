package stats_test

import (
	"context"
	"testing"

	"github.com/trezcool/kocha/core/attendance"
	"github.com/trezcool/kocha/core/event"
	"github.com/trezcool/kocha/core/player"
	"github.com/trezcool/kocha/core/stats"
	dummydb "github.com/trezcool/kocha/storage/database/dummy"
)

type testEnv struct {
	svc           stats.Service
	attendanceSvc attendance.Service
	playerRepo    player.Repository
	eventRepo     event.Repository
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	return &testEnv{
		svc:           stats.NewService(dummydb.NewStatsRepository(db)),
		attendanceSvc: attendance.NewService(dummydb.NewAttendanceRepository(db)),
		playerRepo:    dummydb.NewPlayerRepository(db),
		eventRepo:     dummydb.NewEventRepository(db),
	}
}

func (env *testEnv) createPlayer(t *testing.T, teamID, first, last string) player.Player {
	t.Helper()

	p, err := env.playerRepo.CreatePlayer(context.Background(), player.Player{
		TeamID:    teamID,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		t.Fatalf("CreatePlayer() failed, %v", err)
	}
	return p
}

func (env *testEnv) createEvent(t *testing.T, teamID, typ string) event.Event {
	t.Helper()

	ev, err := env.eventRepo.CreateEvent(context.Background(), event.Event{
		TeamID: teamID,
		Type:   typ,
	})
	if err != nil {
		t.Fatalf("CreateEvent() failed, %v", err)
	}
	return ev
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestService_Save(t *testing.T) {
	ctx := context.Background()
	teamID := "team-1"

	env := setup(t)
	ev := env.createEvent(t, teamID, event.TypeGame)

	err := env.svc.Save(ctx, teamID, ev.ID, stats.SaveRequest{Entries: []stats.Entry{
		{PlayerID: "p1", Goals: intPtr(2), Assists: intPtr(1), MinutesPlayed: intPtr(90), Rating: floatPtr(8.5)},
		{PlayerID: "p2", MinutesPlayed: intPtr(45), Notes: "subbed at half time"},
		{PlayerID: "p1", Goals: intPtr(1)}, // repeated: last entry wins
	}})
	if err != nil {
		t.Fatalf("Save() failed, %v", err)
	}

	rows, err := env.svc.ListByEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("ListByEvent() failed, %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	p1 := rows[0]
	if p1.PlayerID != "p1" {
		p1 = rows[1]
	}
	if p1.Goals.Int != 1 || p1.Assists.Valid || p1.Rating.Valid {
		t.Errorf("repeated player was not collapsed to last entry: %+v", p1)
	}
}

func TestService_TeamSummaries(t *testing.T) {
	ctx := context.Background()
	teamID := "team-1"

	env := setup(t)
	zidane := env.createPlayer(t, teamID, "Zinedine", "Zidane")
	ronaldo := env.createPlayer(t, teamID, "Ronaldo", "Nazario")
	env.createPlayer(t, "other-team", "Lionel", "Messi")

	game1 := env.createEvent(t, teamID, event.TypeGame)
	game2 := env.createEvent(t, teamID, event.TypeGame)
	training := env.createEvent(t, teamID, event.TypeTraining)

	for _, save := range []struct {
		eventID string
		entries []stats.Entry
	}{
		{game1.ID, []stats.Entry{
			{PlayerID: zidane.ID, Goals: intPtr(1), Assists: intPtr(2), MinutesPlayed: intPtr(90), Rating: floatPtr(8)},
			{PlayerID: ronaldo.ID, Goals: intPtr(3), MinutesPlayed: intPtr(90), Rating: floatPtr(9)},
		}},
		{game2.ID, []stats.Entry{
			{PlayerID: zidane.ID, Goals: intPtr(1), MinutesPlayed: intPtr(60), Rating: floatPtr(6)},
		}},
	} {
		if err := env.svc.Save(ctx, teamID, save.eventID, stats.SaveRequest{Entries: save.entries}); err != nil {
			t.Fatalf("Save() failed, %v", err)
		}
	}

	for _, save := range []struct {
		eventID string
		entries []attendance.Entry
	}{
		{game1.ID, []attendance.Entry{
			{PlayerID: zidane.ID, Status: attendance.StatusPresent},
			{PlayerID: ronaldo.ID, Status: attendance.StatusLate},
		}},
		{training.ID, []attendance.Entry{
			{PlayerID: zidane.ID, Status: attendance.StatusAbsent},
			{PlayerID: ronaldo.ID, Status: attendance.StatusPresent},
		}},
	} {
		if err := env.attendanceSvc.Save(ctx, save.eventID, attendance.SaveRequest{Entries: save.entries}); err != nil {
			t.Fatalf("attendance Save() failed, %v", err)
		}
	}

	// a row recorded under another team must not leak into this team's totals,
	// even for a player on this team's roster
	otherGame := env.createEvent(t, "other-team", event.TypeGame)
	err := env.svc.Save(ctx, "other-team", otherGame.ID, stats.SaveRequest{Entries: []stats.Entry{
		{PlayerID: zidane.ID, Goals: intPtr(5), MinutesPlayed: intPtr(90), Rating: floatPtr(10)},
	}})
	if err != nil {
		t.Fatalf("Save() failed, %v", err)
	}

	summaries, err := env.svc.TeamSummaries(ctx, teamID)
	if err != nil {
		t.Fatalf("TeamSummaries() failed, %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	// ordered by last name: Nazario before Zidane
	r := summaries[0]
	if r.PlayerID != ronaldo.ID {
		t.Fatalf("summaries[0].PlayerID = %s, want %s", r.PlayerID, ronaldo.ID)
	}
	if r.Games != 1 || r.Goals != 3 || r.Assists != 0 || r.MinutesPlayed != 90 {
		t.Errorf("unexpected totals: %+v", r)
	}
	if !r.AvgRating.Valid || r.AvgRating.Float64 != 9 {
		t.Errorf("AvgRating = %v, want 9", r.AvgRating)
	}
	if r.AttendanceRate != 1 { // late still counts as attended
		t.Errorf("AttendanceRate = %v, want 1", r.AttendanceRate)
	}

	z := summaries[1]
	if z.PlayerID != zidane.ID {
		t.Fatalf("summaries[1].PlayerID = %s, want %s", z.PlayerID, zidane.ID)
	}
	if z.Games != 2 || z.Goals != 2 || z.Assists != 2 || z.MinutesPlayed != 150 {
		t.Errorf("unexpected totals: %+v", z)
	}
	if !z.AvgRating.Valid || z.AvgRating.Float64 != 7 {
		t.Errorf("AvgRating = %v, want 7", z.AvgRating)
	}
	if z.AttendanceRate != 0.5 {
		t.Errorf("AttendanceRate = %v, want 0.5", z.AttendanceRate)
	}
}
