package echoapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/kocha/core/availability"
	"github.com/trezcool/kocha/core/player"
)

func availabilityPath(teamID, eventID string) string {
	return fmt.Sprintf("/v1/teams/%s/events/%s/availability", teamID, eventID)
}

type availabilityBody struct {
	Records []availability.Record `json:"records"`
	Counts  availability.Counts   `json:"counts"`
}

func parseAvailability(t *testing.T, body []byte) availabilityBody {
	t.Helper()

	var resp availabilityBody
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func Test_availabilityApi(t *testing.T) {
	env := setup(t)
	coach := "coach-1"
	token := env.getToken(t, coach, false)
	tm := env.createTeam(t, coach, "U13 Lions")
	ev := env.createEvent(t, tm.ID)

	newPlayer := func(first, last string) player.Player {
		p, err := env.playerSvc.Create(context.Background(), tm.ID, player.NewPlayer{FirstName: first, LastName: last})
		require.NoError(t, err)
		return p
	}
	sadio := newPlayer("Sadio", "Mane")
	eden := newPlayer("Eden", "Hazard")
	thibaut := newPlayer("Thibaut", "Courtois")

	t.Run("anonymous is rejected", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, availabilityPath(tm.ID, ev.ID))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	})

	t.Run("another coach's event reads as absent", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, availabilityPath(tm.ID, ev.ID), env.getToken(t, "coach-2", false))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	})

	t.Run("empty event has zero counts", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, availabilityPath(tm.ID, ev.ID), token)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := parseAvailability(t, rec.Body.Bytes())
		assert.Empty(t, resp.Records)
		assert.Equal(t, availability.Counts{}, resp.Counts)
	})

	t.Run("save tallies counts per status", func(t *testing.T) {
		body := marchallObj(t, availability.SaveRequest{Entries: []availability.Entry{
			{PlayerID: sadio.ID, Status: availability.StatusComing},
			{PlayerID: eden.ID, Status: availability.StatusComing},
			{PlayerID: thibaut.ID, Status: availability.StatusMaybe},
		}})
		req, rec := newAuthRequest(http.MethodPut, availabilityPath(tm.ID, ev.ID), token, body)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := parseAvailability(t, rec.Body.Bytes())
		assert.Len(t, resp.Records, 3)
		assert.Equal(t, availability.Counts{Coming: 2, Maybe: 1}, resp.Counts)
	})

	t.Run("changing an RSVP moves the tally", func(t *testing.T) {
		body := marchallObj(t, availability.SaveRequest{Entries: []availability.Entry{
			{PlayerID: eden.ID, Status: availability.StatusOut},
		}})
		req, rec := newAuthRequest(http.MethodPut, availabilityPath(tm.ID, ev.ID), token, body)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := parseAvailability(t, rec.Body.Bytes())
		assert.Len(t, resp.Records, 3)
		assert.Equal(t, availability.Counts{Coming: 1, Maybe: 1, Out: 1}, resp.Counts)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		body := marchallObj(t, availability.SaveRequest{Entries: []availability.Entry{
			{PlayerID: sadio.ID, Status: "probably"},
		}})
		req, rec := newAuthRequest(http.MethodPut, availabilityPath(tm.ID, ev.ID), token, body)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})
}
