package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/gradnet/backend/core/profile"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db          *sql.DB
	profileRepo profile.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	fmt.Println("  setadmin -email EMAIL - grant admin rights to the profile with this email")
	fmt.Println("  setadmin -email EMAIL -revoke - revoke admin rights")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	setAdminCmd := flag.NewFlagSet("setadmin", flag.ExitOnError)
	setAdminEmail := setAdminCmd.String("email", "", "The profile's email address.")
	setAdminRevoke := setAdminCmd.Bool("revoke", false, "Revoke admin rights instead of granting them.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "setadmin":
		if err := setAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setAdminEmail == "" {
			setAdminCmd.Usage()
			return errHelp
		}
		return cli.setAdmin(*setAdminEmail, !*setAdminRevoke)
	default:
		cli.printUsage()
		return errHelp
	}
}
