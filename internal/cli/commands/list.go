package commands

import (
	"context"
	"fmt"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Show today's and upcoming birthdays" }
func (listCmd) Usage() string       { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	ov, err := app.Service.Overview(ctx)
	if err != nil {
		return err
	}
	if len(ov.Today) == 0 && len(ov.Upcoming) == 0 {
		fmt.Fprintln(Out, "No birthdays yet. Add one with: add <name> <date>")
		return nil
	}
	if len(ov.Today) > 0 {
		fmt.Fprintln(Out, "Today:")
		for _, b := range ov.Today {
			fmt.Fprintf(Out, "  🎂 %s turns %d today!%s\n", b.Name, b.Age, formatLine(b))
		}
	}
	if len(ov.Upcoming) > 0 {
		fmt.Fprintln(Out, "Upcoming:")
		for _, b := range ov.Upcoming {
			fmt.Fprintf(Out, "  %-20s %s  in %3d days (turns %d)%s  [id %d]\n",
				b.Name, b.Date, b.DaysLeft, b.Age+1, formatLine(b), b.ID)
		}
	}
	if ov.HasUnsyncedChanges {
		fmt.Fprintln(Out, "(local changes pending sync)")
	}
	return nil
}

func formatLine(b model.Birthday) string {
	s := ""
	if b.Group != "" && b.Group != model.GroupOther {
		s += "  [" + string(b.Group) + "]"
	}
	if b.Note != "" {
		s += "  " + b.Note
	}
	return s
}

func init() { RegisterCmd(listCmd{}) }
