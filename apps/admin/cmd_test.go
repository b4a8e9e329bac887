package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/user"
	emailsvc "github.com/trezcool/hustle/services/email"
	dummydb "github.com/trezcool/hustle/storage/database/dummy"
	"github.com/trezcool/hustle/testutil"
)

type migrateCall struct {
	command string
	args    []string
}

type testCLI struct {
	*commandLine
	usrRepo user.Repository
	out     *bytes.Buffer
	calls   []migrateCall
	seeded  int
}

func setup(t *testing.T) *testCLI {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)
	usrRepo := dummydb.NewUserRepository(db)

	conf := testutil.NewConfig()
	validate, _ := testutil.NewValidator()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, testutil.NewLogger())

	tc := &testCLI{usrRepo: usrRepo, out: new(bytes.Buffer)}
	tc.commandLine = &commandLine{
		conf:     conf,
		usrSvc:   user.NewService(usrRepo, mailSvc),
		validate: validate,
		out:      tc.out,
		migrateFunc: func(command string, args ...string) error {
			tc.calls = append(tc.calls, migrateCall{command: command, args: args})
			return nil
		},
		seedFunc: func(context.Context) error {
			tc.seeded++
			return nil
		},
	}
	return tc
}

// mockPassword makes the password prompt answer pwd.
func mockPassword(t *testing.T, pwd string) {
	prev := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = prev })
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
}

func (tc *testCLI) check(t *testing.T, tt cliTest) {
	t.Helper()
	mockPassword(t, tt.pwd)
	err := tc.run(append([]string{"admin"}, tt.args...))
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, errors.Cause(err))
	case tt.wantErrStr != "":
		require.Error(t, err)
		assert.Equal(t, tt.wantErrStr, err.Error())
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "bad flag", args: []string{"token", "-lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}
	assert.Contains(t, cli.out.String(), "Usage:")
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: migrate up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: migrate down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}

	require.Len(t, cli.calls, 9)
	assert.Equal(t, migrateCall{command: "up-to", args: []string{"2"}}, cli.calls[2])
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	cli.check(t, cliTest{args: []string{"seed"}})
	assert.Equal(t, 1, cli.seeded)
	assert.Contains(t, cli.out.String(), "demo data loaded")
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	testutil.CreateUser(t, cli.usrRepo, "taken", "taken@hustle.dev", "Pass-w0rd!", core.TierFree)

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no email", args: []string{"adduser", "-username", "jane"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "jane", "-email", "jane@hustle.dev"}, wantErr: errHelp},
		{name: "username taken", args: []string{"adduser", "-username", "Taken", "-email", "jane@hustle.dev"}, pwd: "Pass-w0rd!", wantErrStr: user.ErrUsernameExists.Error()},
		{name: "created", args: []string{"adduser", "-username", "Jane", "-email", "Jane@Hustle.dev", "-tier", "premium"}, pwd: "Pass-w0rd!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}

	t.Run("weak password", func(t *testing.T) {
		mockPassword(t, "12345678")
		err := cli.run([]string{"admin", "adduser", "-username", "bob", "-email", "bob@hustle.dev"})
		require.Error(t, err)
		var vErrs validator.ValidationErrors
		require.True(t, errors.As(err, &vErrs))
		assert.Equal(t, "pwdnotallnum", vErrs[0].Tag())
	})

	usr, err := cli.usrRepo.FindByUsername(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, "jane@hustle.dev", usr.Email)
	assert.Equal(t, core.TierPremium, usr.Tier)
	assert.NoError(t, usr.CheckPassword("Pass-w0rd!"))
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, cli.usrRepo, "awe", "awe@test.cd", "Pass-w0rd!", core.TierFree)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "n3w-Secret", wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, pwd: "n3w-Secret"},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, pwd: "0ther-Secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}

	refreshed, err := cli.usrRepo.Get(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.NoError(t, refreshed.CheckPassword("0ther-Secret"))
}

func Test_commandLine_upgrade(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, cli.usrRepo, "awe", "awe@test.cd", "Pass-w0rd!", core.TierFree)

	tests := []cliTest{
		{name: "no tier", args: []string{"upgrade", "-username", "awe"}, wantErr: errHelp},
		{name: "user not found", args: []string{"upgrade", "-username", "lol", "-tier", "premium"}, wantErr: user.ErrNotFound},
		{name: "upgraded", args: []string{"upgrade", "-username", "awe@test.cd", "-tier", "Lifetime"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli.check(t, tt)
		})
	}

	refreshed, err := cli.usrRepo.Get(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.Equal(t, core.TierLifetime, refreshed.Tier)
	assert.Contains(t, cli.out.String(), `user "awe" is now on the lifetime tier`)
}

func Test_commandLine_token(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, cli.usrRepo, "awe", "awe@test.cd", "Pass-w0rd!", core.TierFree)

	cli.check(t, cliTest{name: "user not found", args: []string{"token", "-username", "lol"}, wantErr: user.ErrNotFound})
	cli.check(t, cliTest{name: "token", args: []string{"token", "-username", "awe"}})

	claims, err := user.ParseToken(strings.TrimSpace(cli.out.String()), []byte(cli.conf.SecretKey))
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, usr.ID, id)
}
