package main

import (
	"context"

	"github.com/trezcool/hustle/core/user"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	sp := user.SetPassword{Username: usr.Username, Email: usr.Email, Password: pwd}
	if err := sp.Validate(cli.validate); err != nil {
		return err
	}
	if _, err := cli.usrSvc.SetPassword(ctx, usr, pwd); err != nil {
		return err
	}
	return nil
}
