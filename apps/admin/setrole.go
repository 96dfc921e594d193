package main

import (
	"fmt"

	"github.com/osatria/portal/core"
	"github.com/osatria/portal/core/user"
)

// setRole changes a user's role; the user must have signed in at least once.
func (cli *commandLine) setRole(email, role string) error {
	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role, true /* lower */)

	var valid bool
	for _, r := range user.AllRoles {
		if role == r {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown role %q", role)
	}

	usr, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	if usr, err = cli.usrSvc.SetRole(usr.UID, role); err != nil {
		return err
	}

	logger.Printf("%s is now a %s", usr.Email, usr.Role)
	return nil
}
