package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/osatria/portal/core/repo"
	"github.com/osatria/portal/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	usrSvc  user.ServiceInterface
	repoSvc repo.ServiceInterface
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  setrole -email EMAIL -role ROLE          - set a user's role (admin|maintainer|contributor)")
	fmt.Println("  whitelist -username GITHUB_USERNAME      - whitelist a maintainer's GitHub username")
	fmt.Println("  unwhitelist -username GITHUB_USERNAME    - remove a GitHub username from the whitelist")
	fmt.Println("  showwhitelist                            - list whitelisted maintainers")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	setRoleCmd := flag.NewFlagSet("setrole", flag.ExitOnError)
	setRoleEmail := setRoleCmd.String("email", "", "The user's email.")
	setRoleRole := setRoleCmd.String("role", "", "One of: admin, maintainer, contributor.")

	whitelistCmd := flag.NewFlagSet("whitelist", flag.ExitOnError)
	whitelistUname := whitelistCmd.String("username", "", "The maintainer's GitHub username.")

	unwhitelistCmd := flag.NewFlagSet("unwhitelist", flag.ExitOnError)
	unwhitelistUname := unwhitelistCmd.String("username", "", "The maintainer's GitHub username.")

	switch args[1] {
	case "setrole":
		if err := setRoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setRoleEmail == "" || *setRoleRole == "" {
			setRoleCmd.Usage()
			return errHelp
		}
		return cli.setRole(*setRoleEmail, *setRoleRole)
	case "whitelist":
		if err := whitelistCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *whitelistUname == "" {
			whitelistCmd.Usage()
			return errHelp
		}
		return cli.whitelist(*whitelistUname)
	case "unwhitelist":
		if err := unwhitelistCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *unwhitelistUname == "" {
			unwhitelistCmd.Usage()
			return errHelp
		}
		return cli.unwhitelist(*unwhitelistUname)
	case "showwhitelist":
		return cli.showWhitelist()
	default:
		cli.printUsage()
		return errHelp
	}
}
