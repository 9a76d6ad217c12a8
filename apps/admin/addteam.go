package main

import (
	"context"

	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/team"
)

// addTeam creates a team owned by the given coach.
func (cli *commandLine) addTeam(name, coachID, season, color string) error {
	ctx := context.Background()
	svc := team.NewService(cli.teamRepo)

	nt := team.NewTeam{
		Name:   core.CleanString(name),
		Season: core.CleanString(season),
		Color:  core.CleanString(color, true /* lower */),
	}
	t, err := svc.Create(ctx, nt, coachID)
	if err != nil {
		return err
	}
	logger.Printf("team %q created: %s\n", t.Name, t.ID)
	return nil
}
