package commands

import (
	"context"
	"fmt"
	"strconv"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/config"
)

type removeCmd struct{}

func (removeCmd) Name() string        { return "remove" }
func (removeCmd) Description() string { return "Remove a birthday by id" }
func (removeCmd) Usage() string       { return "remove <id>" }

func (removeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	cur, err := findActive(app.Store, id)
	if err != nil {
		return err
	}
	if err := app.Service.Remove(ctx, id); err != nil {
		return err
	}
	if err := app.Notifier.CancelAll(cur.Name); err != nil {
		app.Log.Warnw("cancel reminders", "name", cur.Name, "error", err)
	}
	fmt.Fprintln(Out, "Removed", cur.Name)
	return nil
}

func init() { RegisterCmd(removeCmd{}) }
