package echoapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kocha/core/drill"
	"github.com/trezcool/kocha/core/event"
	"github.com/trezcool/kocha/core/eventdrill"
	"github.com/trezcool/kocha/core/team"
)

func (env *testEnv) createTeam(t *testing.T, coachID, name string) team.Team {
	t.Helper()

	tm, err := env.teamSvc.Create(context.Background(), team.NewTeam{Name: name}, coachID)
	if err != nil {
		t.Fatalf("createTeam() failed: %v", err)
	}
	return tm
}

func (env *testEnv) createEvent(t *testing.T, teamID string) event.Event {
	t.Helper()

	ev, err := env.eventSvc.Create(context.Background(), teamID, event.NewEvent{
		Type: event.TypeTraining,
		Date: "2026-09-01",
	})
	if err != nil {
		t.Fatalf("createEvent() failed: %v", err)
	}
	return ev
}

func (env *testEnv) createDrill(t *testing.T, coachID, title string) drill.Drill {
	t.Helper()

	d, err := env.drillSvc.Create(context.Background(), drill.NewDrill{Title: title}, coachID)
	if err != nil {
		t.Fatalf("createDrill() failed: %v", err)
	}
	return d
}

func drillsPath(teamID, eventID string) string {
	return fmt.Sprintf("/v1/teams/%s/events/%s/drills", teamID, eventID)
}

func planIDs(t *testing.T, body []byte) ([]string, []int) {
	t.Helper()

	var plan []eventdrill.AttachedDrill
	require.NoError(t, json.Unmarshal(body, &plan))
	ids := make([]string, 0, len(plan))
	positions := make([]int, 0, len(plan))
	for _, ad := range plan {
		ids = append(ids, ad.ID)
		positions = append(positions, ad.Position)
	}
	return ids, positions
}

func Test_eventDrillApi_auth(t *testing.T) {
	env := setup(t)
	coach := "coach-1"
	tm := env.createTeam(t, coach, "U13 Lions")
	ev := env.createEvent(t, tm.ID)

	otherToken := env.getToken(t, "coach-2", false)

	tests := []httpTest{
		{
			name: "anonymous is rejected", method: http.MethodGet, path: drillsPath(tm.ID, ev.ID),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "another coach's team reads as absent", method: http.MethodGet, path: drillsPath(tm.ID, ev.ID),
			token: otherToken, wantCode: http.StatusNotFound,
		},
		{
			name: "admin can access any team", method: http.MethodGet, path: drillsPath(tm.ID, ev.ID),
			token: env.getToken(t, "admin-1", true), wantCode: http.StatusOK, wantData: []byte(`[]`),
		},
		{
			name: "unknown event", method: http.MethodGet, path: drillsPath(tm.ID, "nope"),
			token: env.getToken(t, coach, false), wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_eventDrillApi_attach(t *testing.T) {
	env := setup(t)
	coach := "coach-1"
	tm := env.createTeam(t, coach, "U13 Lions")
	ev := env.createEvent(t, tm.ID)
	token := env.getToken(t, coach, false)

	a := env.createDrill(t, coach, "Rondo")
	b := env.createDrill(t, coach, "Shooting")
	c := env.createDrill(t, coach, "Pressing")

	// first batch
	body := marchallObj(t, map[string][]string{"drill_ids": {a.ID, b.ID}})
	req, rec := newAuthRequest(http.MethodPost, drillsPath(tm.ID, ev.ID), token, body)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ids, positions := planIDs(t, rec.Body.Bytes())
	assert.Equal(t, []string{a.ID, b.ID}, ids)
	assert.Equal(t, []int{0, 1}, positions)

	// second batch appends
	body = marchallObj(t, map[string][]string{"drill_ids": {c.ID}})
	req, rec = newAuthRequest(http.MethodPost, drillsPath(tm.ID, ev.ID), token, body)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ids, positions = planIDs(t, rec.Body.Bytes())
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids)
	assert.Equal(t, []int{0, 1, 2}, positions)

	// re-attach moves to the tail
	body = marchallObj(t, map[string][]string{"drill_ids": {a.ID}})
	req, rec = newAuthRequest(http.MethodPost, drillsPath(tm.ID, ev.ID), token, body)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ids, positions = planIDs(t, rec.Body.Bytes())
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, ids)
	assert.Equal(t, []int{1, 2, 3}, positions)
}

func Test_eventDrillApi_reorderAndDetach(t *testing.T) {
	env := setup(t)
	coach := "coach-1"
	tm := env.createTeam(t, coach, "U13 Lions")
	ev := env.createEvent(t, tm.ID)
	token := env.getToken(t, coach, false)

	a := env.createDrill(t, coach, "Rondo")
	b := env.createDrill(t, coach, "Shooting")
	c := env.createDrill(t, coach, "Pressing")

	body := marchallObj(t, map[string][]string{"drill_ids": {a.ID, b.ID, c.ID}})
	req, rec := newAuthRequest(http.MethodPost, drillsPath(tm.ID, ev.ID), token, body)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// partial cover is rejected
	body = marchallObj(t, map[string][]string{"drill_ids": {a.ID}})
	req, rec = newAuthRequest(http.MethodPut, drillsPath(tm.ID, ev.ID)+"/order", token, body)
	env.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// valid permutation
	body = marchallObj(t, map[string][]string{"drill_ids": {b.ID, c.ID, a.ID}})
	req, rec = newAuthRequest(http.MethodPut, drillsPath(tm.ID, ev.ID)+"/order", token, body)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ids, positions := planIDs(t, rec.Body.Bytes())
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, ids)
	assert.Equal(t, []int{0, 1, 2}, positions)

	// detach the middle drill; survivors keep their positions
	req, rec = newAuthRequest(http.MethodDelete, drillsPath(tm.ID, ev.ID)+"/"+c.ID, token)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	req, rec = newAuthRequest(http.MethodGet, drillsPath(tm.ID, ev.ID), token)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	ids, positions = planIDs(t, rec.Body.Bytes())
	assert.Equal(t, []string{b.ID, a.ID}, ids)
	assert.Equal(t, []int{0, 2}, positions)
}
