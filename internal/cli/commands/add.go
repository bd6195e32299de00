package commands

import (
	"context"
	"flag"
	"fmt"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/config"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Add a birthday" }
func (addCmd) Usage() string {
	return "add <name> <date> [-note <text>] [-group family|friend|work|other] [-phone <number>]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	name, date := args[0], args[1]

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(Out)
	note := fs.String("note", "", "free-form note")
	group := fs.String("group", "", "group tag")
	phone := fs.String("phone", "", "contact phone number")
	contact := fs.String("contact", "", "linked contact id")
	if err := fs.Parse(args[2:]); err != nil {
		return ErrUsage
	}

	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	created, err := app.Service.Add(ctx, model.Birthday{
		Name:               name,
		Date:               date,
		Note:               *note,
		Group:              model.Group(*group),
		ContactPhoneNumber: *phone,
		LinkedContactID:    *contact,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Added:")
	fmt.Fprintf(Out, "  id:   %d\n", created.ID)
	fmt.Fprintf(Out, "  name: %s\n", created.Name)
	turns := created.Age + 1
	if created.DaysLeft == 0 {
		turns = created.Age
	}
	fmt.Fprintf(Out, "  date: %s (in %d days, turns %d)\n", created.Date, created.DaysLeft, turns)
	return nil
}

func init() { RegisterCmd(addCmd{}) }
