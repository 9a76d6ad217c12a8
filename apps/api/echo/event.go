package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/event"
)

type eventApi struct {
	deps *ServerDeps
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := eventApi{deps: deps}

	eg := g.Group("/teams/:id/events", jwt, teamOwnerMiddleware(deps.TeamSvc))
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/:eventID", api.retrieve)
	eg.PUT("/:eventID", api.update)
	eg.DELETE("/:eventID", api.destroy)
}

func (api *eventApi) create(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	ev, err := api.deps.EventSvc.Create(ctx.Request().Context(), t.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *eventApi) query(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	filter := new(event.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []event.Event{})
	}
	filter.Clean()

	events, err := api.deps.EventSvc.Filter(ctx.Request().Context(), t.ID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	ev, err := api.deps.EventSvc.GetByID(ctx.Request().Context(), t.ID, ctx.Param("eventID"))
	if err != nil {
		return errors.Wrap(err, "finding event by ID")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) update(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	ev, err := api.deps.EventSvc.Update(ctx.Request().Context(), t.ID, ctx.Param("eventID"), data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}
	if err := api.deps.EventSvc.Delete(ctx.Request().Context(), t.ID, ctx.Param("eventID")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
