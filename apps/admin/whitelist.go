package main

import (
	"fmt"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/repo"
)

func (cli *commandLine) whitelist(ghUsername string) error {
	entry := repo.NewWhitelistEntry{GithubUsername: ghUsername, AddedBy: "admin-cli"}
	entry.GithubUsername = core.CleanString(entry.GithubUsername, true /* lower */)

	we, err := cli.repoSvc.Whitelist(entry)
	if err != nil {
		return err
	}
	logger.Printf("whitelisted %s", we.GithubUsername)
	return nil
}

func (cli *commandLine) unwhitelist(ghUsername string) error {
	ghUsername = core.CleanString(ghUsername, true /* lower */)

	entries, err := cli.repoSvc.QueryWhitelist()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.GithubUsername == ghUsername {
			if err = cli.repoSvc.RemoveFromWhitelist(entry.ID); err != nil {
				return err
			}
			logger.Printf("removed %s from the whitelist", ghUsername)
			return nil
		}
	}
	return fmt.Errorf("%q is not whitelisted", ghUsername)
}

func (cli *commandLine) showWhitelist() error {
	entries, err := cli.repoSvc.QueryWhitelist()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("the whitelist is empty")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s\t(added by %s on %s)\n", entry.GithubUsername, entry.AddedBy, entry.CreatedAt.Format("2006-01-02"))
	}
	return nil
}
