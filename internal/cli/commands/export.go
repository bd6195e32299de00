package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/vcardio"
	"BirthdayKeeper/internal/config"
)

type exportCmd struct{}

func (exportCmd) Name() string        { return "export" }
func (exportCmd) Description() string { return "Export birthdays to an iCalendar (.ics) file" }
func (exportCmd) Usage() string       { return "export <birthdays.ics>" }

func (exportCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	records, err := app.Store.ListActive()
	if err != nil {
		return err
	}
	data, err := vcardio.ExportICS(records, time.Now())
	if err != nil {
		return fmt.Errorf("build calendar: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Exported %d birthdays to %s\n", len(records), args[0])
	return nil
}

func init() { RegisterCmd(exportCmd{}) }
