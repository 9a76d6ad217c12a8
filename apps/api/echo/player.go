package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/player"
)

type playerApi struct {
	deps *ServerDeps
}

func registerPlayerAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := playerApi{deps: deps}

	pg := g.Group("/teams/:id/players", jwt, teamOwnerMiddleware(deps.TeamSvc))
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.GET("/:playerID", api.retrieve)
	pg.PUT("/:playerID", api.update)
	pg.DELETE("/:playerID", api.destroy)
}

func (api *playerApi) create(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	var data player.NewPlayer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPlayer")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	p, err := api.deps.PlayerSvc.Create(ctx.Request().Context(), t.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating player")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *playerApi) query(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	filter := new(player.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []player.Player{})
	}
	filter.Clean()

	players, err := api.deps.PlayerSvc.Filter(ctx.Request().Context(), t.ID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying players")
	}
	if players == nil {
		players = []player.Player{}
	}
	return ctx.JSON(http.StatusOK, players)
}

func (api *playerApi) retrieve(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	p, err := api.deps.PlayerSvc.GetByID(ctx.Request().Context(), t.ID, ctx.Param("playerID"))
	if err != nil {
		return errors.Wrap(err, "finding player by ID")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *playerApi) update(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}

	var data player.UpdatePlayer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePlayer")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	p, err := api.deps.PlayerSvc.Update(ctx.Request().Context(), t.ID, ctx.Param("playerID"), data)
	if err != nil {
		return errors.Wrap(err, "updating player")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *playerApi) destroy(ctx echo.Context) error {
	t, err := getContextTeam(ctx)
	if err != nil {
		return err
	}
	if err := api.deps.PlayerSvc.Delete(ctx.Request().Context(), t.ID, ctx.Param("playerID")); err != nil {
		return errors.Wrap(err, "deleting player")
	}
	return ctx.NoContent(http.StatusNoContent)
}
