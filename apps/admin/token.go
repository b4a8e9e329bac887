package main

import (
	"context"
	"fmt"

	"github.com/trezcool/hustle/core/user"
)

// token prints an access token accepted by the API in token auth mode.
func (cli *commandLine) token(uname string) error {
	usr, err := cli.usrSvc.GetByUsernameOrEmail(context.Background(), uname)
	if err != nil {
		return err
	}
	tok, err := user.GenerateToken(usr, cli.conf.AppName, []byte(cli.conf.SecretKey), cli.conf.Auth.TokenExpirationDelta)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, tok)
	return nil
}
