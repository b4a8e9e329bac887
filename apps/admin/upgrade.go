package main

import (
	"context"
	"fmt"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/user"
)

func (cli *commandLine) upgrade(uname, tier string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	data := user.UpgradeTier{Tier: core.Tier(tier)}
	if err := data.Validate(cli.validate); err != nil {
		return err
	}
	if usr, err = cli.usrSvc.UpgradeTier(ctx, usr, data.Tier); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %q is now on the %s tier\n", usr.Username, usr.Tier)
	return nil
}
