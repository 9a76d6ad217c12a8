package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/kocha/core/team"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db       *sql.DB
	teamRepo team.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run database migrations (up, down, status, ...)")
	fmt.Println("  addteam -name NAME -coach COACH_ID [-season SEASON] [-color COLOR] - create a team")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTeamCmd := flag.NewFlagSet("addteam", flag.ExitOnError)
	addTeamName := addTeamCmd.String("name", "", "The team's name.")
	addTeamCoach := addTeamCmd.String("coach", "", "The owning coach's subject ID.")
	addTeamSeason := addTeamCmd.String("season", "", "The team's season label, eg. 2025/2026.")
	addTeamColor := addTeamCmd.String("color", "", "The team's color.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addteam":
		if err := addTeamCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeamName == "" || *addTeamCoach == "" {
			addTeamCmd.Usage()
			return errHelp
		}
		return cli.addTeam(*addTeamName, *addTeamCoach, *addTeamSeason, *addTeamColor)
	default:
		cli.printUsage()
		return errHelp
	}
}
