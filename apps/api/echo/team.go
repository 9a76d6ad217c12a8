package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/team"
)

type teamApi struct {
	deps *ServerDeps
}

func registerTeamAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := teamApi{deps: deps}

	tg := g.Group("/teams", jwt)
	tg.GET("", api.query)
	tg.POST("", api.create)

	dg := tg.Group("/:id", teamOwnerMiddleware(deps.TeamSvc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *teamApi) create(ctx echo.Context) error {
	var data team.NewTeam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeam")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	t, err := api.deps.TeamSvc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating team")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teamApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	teams, err := api.deps.TeamSvc.Query(ctx.Request().Context(), claims.Subject, claims.IsAdmin)
	if err != nil {
		return errors.Wrap(err, "querying teams")
	}
	if teams == nil {
		teams = []team.Team{}
	}
	return ctx.JSON(http.StatusOK, teams)
}

func (api *teamApi) retrieve(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teamApi) update(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	var data team.UpdateTeam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeam")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	t, err = api.deps.TeamSvc.Update(ctx.Request().Context(), t.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating team")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teamApi) destroy(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}
	if err := api.deps.TeamSvc.Delete(ctx.Request().Context(), t.ID); err != nil {
		return errors.Wrap(err, "deleting team")
	}
	return ctx.NoContent(http.StatusNoContent)
}
