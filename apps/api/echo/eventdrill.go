package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/event"
)

type eventDrillApi struct {
	deps *ServerDeps
}

func registerEventDrillAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := eventDrillApi{deps: deps}

	dg := g.Group("/teams/:id/events/:eventID/drills",
		jwt, teamOwnerMiddleware(deps.TeamSvc), eventMiddleware(deps.EventSvc))
	dg.GET("", api.query)
	dg.POST("", api.attach)
	dg.PUT("/order", api.reorder)
	dg.DELETE("/:drillID", api.detach)
}

var contextEventKey = "event"

// eventMiddleware loads the event at :eventID into the context, scoped to the
// context team so an event of another team reads as absent.
func eventMiddleware(svc event.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			t, err := getContextTeam(ctx)
			if err != nil {
				return err
			}
			ev, err := svc.GetByID(ctx.Request().Context(), t.ID, ctx.Param("eventID"))
			if err != nil {
				if errors.Cause(err) == event.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding event by ID")
			}
			ctx.Set(contextEventKey, ev)
			return next(ctx)
		}
	}
}

func getContextEvent(ctx echo.Context) (event.Event, error) {
	if ev, ok := ctx.Get(contextEventKey).(event.Event); ok {
		return ev, nil
	}
	return event.Event{}, errHttpNotFound
}

type DrillIDsRequest struct {
	DrillIDs []string `json:"drill_ids" validate:"omitempty,dive,uuid4"`
}

func (r *DrillIDsRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (api *eventDrillApi) attach(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	var data DrillIDsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DrillIDsRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	if err := api.deps.EventDrillSvc.Attach(ctx.Request().Context(), ev.ID, data.DrillIDs); err != nil {
		return errors.Wrap(err, "attaching drills")
	}
	return api.respondWithPlan(ctx, ev.ID, http.StatusOK)
}

func (api *eventDrillApi) detach(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}
	if err := api.deps.EventDrillSvc.Detach(ctx.Request().Context(), ev.ID, ctx.Param("drillID")); err != nil {
		return errors.Wrap(err, "detaching drill")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventDrillApi) reorder(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	var data DrillIDsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DrillIDsRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	if err := api.deps.EventDrillSvc.Reorder(ctx.Request().Context(), ev.ID, data.DrillIDs); err != nil {
		return err
	}
	return api.respondWithPlan(ctx, ev.ID, http.StatusOK)
}

func (api *eventDrillApi) query(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}
	return api.respondWithPlan(ctx, ev.ID, http.StatusOK)
}

func (api *eventDrillApi) respondWithPlan(ctx echo.Context, eventID string, code int) error {
	drills, err := api.deps.EventDrillSvc.OrderedDrills(ctx.Request().Context(), eventID)
	if err != nil {
		return errors.Wrap(err, "listing ordered drills")
	}
	return ctx.JSON(code, drills)
}
