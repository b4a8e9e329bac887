package main

import (
	"context"
	"fmt"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/user"
)

// addUser creates a user.User after running the same checks as any new account.
func (cli *commandLine) addUser(uname, email, pwd, tier string) error {
	ctx := context.Background()
	nu := user.NewUser{
		Username: uname,
		Email:    email,
		Password: pwd,
		Tier:     core.Tier(tier),
	}
	if err := nu.Validate(ctx, cli.validate, cli.usrSvc); err != nil {
		return err
	}
	usr, err := cli.usrSvc.Create(ctx, nu)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %q created with id %d\n", usr.Username, usr.ID)
	return nil
}
