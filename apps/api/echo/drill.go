package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/drill"
)

type drillApi struct {
	deps *ServerDeps
}

func registerDrillAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := drillApi{deps: deps}

	dg := g.Group("/drills", jwt)
	dg.GET("", api.query)
	dg.POST("", api.create)
	dg.GET("/:id", api.retrieve)
	dg.PUT("/:id", api.update)
	dg.DELETE("/:id", api.destroy)
}

func (api *drillApi) create(ctx echo.Context) error {
	var data drill.NewDrill
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDrill")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	d, err := api.deps.DrillSvc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating drill")
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *drillApi) query(ctx echo.Context) error {
	filter := new(drill.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []drill.Drill{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)
	filter.Orderings = ordering.Orderings

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	// another coach's private drills never list
	if !claims.IsAdmin {
		filter.AccessibleTo = claims.Subject
	}
	filter.Clean()

	drills, err := api.deps.DrillSvc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying drills")
	}
	if drills == nil {
		drills = []drill.Drill{}
	}
	return ctx.JSON(http.StatusOK, drills)
}

func (api *drillApi) retrieve(ctx echo.Context) error {
	d, err := api.getAccessibleDrill(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *drillApi) update(ctx echo.Context) error {
	d, err := api.getAccessibleDrill(ctx)
	if err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if d.CreatedBy != claims.Subject && !claims.IsAdmin {
		return errHttpForbidden
	}

	var data drill.UpdateDrill
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateDrill")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	d, err = api.deps.DrillSvc.Update(ctx.Request().Context(), d.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating drill")
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *drillApi) destroy(ctx echo.Context) error {
	d, err := api.getAccessibleDrill(ctx)
	if err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if d.CreatedBy != claims.Subject && !claims.IsAdmin {
		return errHttpForbidden
	}

	if err := api.deps.DrillSvc.Delete(ctx.Request().Context(), d.ID); err != nil {
		return errors.Wrap(err, "deleting drill")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// getAccessibleDrill fetches the drill at :id; a private drill of another
// coach reads as absent.
func (api *drillApi) getAccessibleDrill(ctx echo.Context) (drill.Drill, error) {
	d, err := api.deps.DrillSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return drill.Drill{}, errors.Wrap(err, "finding drill by ID")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return drill.Drill{}, errors.Wrap(err, "getting context claims")
	}
	if d.Visibility == drill.VisibilityPrivate && d.CreatedBy != claims.Subject && !claims.IsAdmin {
		return drill.Drill{}, errHttpNotFound
	}
	return d, nil
}
