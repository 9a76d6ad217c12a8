package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/attendance"
)

type attendanceApi struct {
	deps *ServerDeps
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps *ServerDeps) {
	api := attendanceApi{deps: deps}

	ag := g.Group("/teams/:id/events/:eventID/attendance",
		jwt, teamOwnerMiddleware(deps.TeamSvc), eventMiddleware(deps.EventSvc))
	ag.GET("", api.list)
	ag.PUT("", api.save)
}

func (api *attendanceApi) list(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	records, err := api.deps.AttendanceSvc.ListByEvent(ctx.Request().Context(), ev.ID)
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) save(ctx echo.Context) error {
	ev, err := getContextEvent(ctx)
	if err != nil {
		return err
	}

	var data attendance.SaveRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	if err := api.deps.AttendanceSvc.Save(ctx.Request().Context(), ev.ID, data); err != nil {
		return errors.Wrap(err, "saving attendance")
	}
	return api.respondWithRecords(ctx, ev.ID)
}

func (api *attendanceApi) respondWithRecords(ctx echo.Context, eventID string) error {
	records, err := api.deps.AttendanceSvc.ListByEvent(ctx.Request().Context(), eventID)
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}
