package commands

import (
	"context"
	"fmt"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/config"
)

type syncCmd struct{}

func (syncCmd) Name() string        { return "sync" }
func (syncCmd) Description() string { return "Run one reconciliation pass with the server" }
func (syncCmd) Usage() string       { return "sync" }

func (syncCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Service.ReconcileNow(ctx)
	if err != nil {
		return err
	}
	if report.Skipped {
		fmt.Fprintln(Out, "Sync skipped:", report.SkipReason)
		return nil
	}
	fmt.Fprintf(Out, "Sync done: %d pushed, %d deleted remotely, %d pulled, %d dropped\n",
		report.Uploaded, report.Deleted, report.Pulled, report.Dropped)
	return nil
}

func init() { RegisterCmd(syncCmd{}) }
