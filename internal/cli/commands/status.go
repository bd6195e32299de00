package commands

import (
	"context"
	"fmt"

	"BirthdayKeeper/internal/cli/api"
	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/repo/fs"
	"BirthdayKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show login, server reachability and pending changes" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	login, _ := (fs.AuthFSStore{}).LoadLogin()
	if login == "" {
		fmt.Fprintln(Out, "Login: (not logged in)")
	} else {
		fmt.Fprintln(Out, "Login:", login)
	}

	if cfg.Offline {
		fmt.Fprintln(Out, "Server: offline mode")
	} else if api.Ping(ctx, cfg.ServerURL) {
		fmt.Fprintln(Out, "Server: reachable at", cfg.ServerURL)
	} else {
		fmt.Fprintln(Out, "Server: unreachable at", cfg.ServerURL)
	}

	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()
	pending, err := app.Service.HasUnsyncedChanges()
	if err != nil {
		return err
	}
	if pending {
		fmt.Fprintln(Out, "Local changes: pending sync")
	} else {
		fmt.Fprintln(Out, "Local changes: none")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
