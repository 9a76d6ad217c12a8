package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kocha/core/team"
)

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

var contextTeamKey = "team"

// teamOwnerMiddleware loads the team at :id into the context and restricts
// access to its creator (or an admin). An inaccessible team reads as absent.
func teamOwnerMiddleware(svc team.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}

			t, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == team.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding team by ID")
			}
			if t.CreatedBy != claims.Subject && !claims.IsAdmin {
				return errHttpNotFound
			}
			ctx.Set(contextTeamKey, t)
			return next(ctx)
		}
	}
}

func getContextTeam(ctx echo.Context) (team.Team, error) {
	if t, ok := ctx.Get(contextTeamKey).(team.Team); ok {
		return t, nil
	}
	return team.Team{}, errHttpNotFound
}
