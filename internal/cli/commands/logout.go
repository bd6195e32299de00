package commands

import (
	"context"
	"fmt"

	"BirthdayKeeper/internal/cli/repo/fs"
	"BirthdayKeeper/internal/cli/repo/keyring"
	"BirthdayKeeper/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget stored auth cookie and login" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	fsStore := fs.AuthFSStore{}
	tokens := keyring.AuthKeyringStore{Fallback: fsStore}
	if err := tokens.Clear(); err != nil {
		return err
	}
	if err := fsStore.ClearLogin(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
