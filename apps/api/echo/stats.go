package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/stats"
)

type statsApi struct {
	deps *ServerDeps
}

func registerStatsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := statsApi{deps: deps}

	pg := g.Group("/teams/:id/events/:eventID/performance",
		jwt, teamOwnerMiddleware(deps.TeamSvc), eventMiddleware(deps.EventSvc))
	pg.GET("", api.list)
	pg.PUT("", api.save)

	g.GET("/teams/:id/stats", api.teamSummaries, jwt, teamOwnerMiddleware(deps.TeamSvc))
}

func (api *statsApi) list(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	rows, err := api.deps.StatsSvc.ListByEvent(ctx.Request().Context(), ev.ID)
	if err != nil {
		return errors.Wrap(err, "listing performance stats")
	}
	if rows == nil {
		rows = []stats.PerformanceStat{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *statsApi) save(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	var data stats.SaveRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	if err := api.deps.StatsSvc.Save(ctx.Request().Context(), t.ID, ev.ID, data); err != nil {
		return errors.Wrap(err, "saving performance stats")
	}

	rows, err := api.deps.StatsSvc.ListByEvent(ctx.Request().Context(), ev.ID)
	if err != nil {
		return errors.Wrap(err, "listing performance stats")
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *statsApi) teamSummaries(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	summaries, err := api.deps.StatsSvc.TeamSummaries(ctx.Request().Context(), t.ID)
	if err != nil {
		return errors.Wrap(err, "aggregating team stats")
	}
	if summaries == nil {
		summaries = []stats.PlayerSummary{}
	}
	return ctx.JSON(http.StatusOK, summaries)
}
