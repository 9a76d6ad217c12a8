package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/availability"
)

type availabilityApi struct {
	deps *ServerDeps
}

// availabilityResponse pairs the raw RSVP records with their per-status tally.
type availabilityResponse struct {
	Records []availability.Record `json:"records"`
	Counts  availability.Counts   `json:"counts"`
}

func registerAvailabilityAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := availabilityApi{deps: deps}

	ag := g.Group("/teams/:id/events/:eventID/availability",
		jwt, teamOwnerMiddleware(deps.TeamSvc), eventMiddleware(deps.EventSvc))
	ag.GET("", api.list)
	ag.PUT("", api.save)
}

func (api *availabilityApi) list(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}
	return api.respondWithRecords(ctx, ev.ID)
}

func (api *availabilityApi) save(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	var data availability.SaveRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	if err := api.deps.AvailabilitySvc.Save(ctx.Request().Context(), ev.ID, data); err != nil {
		return errors.Wrap(err, "saving availability")
	}
	return api.respondWithRecords(ctx, ev.ID)
}

func (api *availabilityApi) respondWithRecords(ctx echo.Context, eventID string) error {
	records, err := api.deps.AvailabilitySvc.ListByEvent(ctx.Request().Context(), eventID)
	if err != nil {
		return errors.Wrap(err, "listing availability")
	}
	counts, err := api.deps.AvailabilitySvc.CountsByEvent(ctx.Request().Context(), eventID)
	if err != nil {
		return errors.Wrap(err, "counting availability")
	}
	return ctx.JSON(http.StatusOK, availabilityResponse{Records: records, Counts: counts})
}
