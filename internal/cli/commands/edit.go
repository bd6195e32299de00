package commands

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/repo"
	"BirthdayKeeper/internal/config"
)

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Edit a birthday by id" }
func (editCmd) Usage() string {
	return "edit <id> [-name <name>] [-date <date>] [-note <text>] [-group <group>] [-phone <number>]"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(Out)
	name := fs.String("name", "", "person name")
	date := fs.String("date", "", "birth date")
	note := fs.String("note", "", "free-form note")
	group := fs.String("group", "", "group tag")
	phone := fs.String("phone", "", "contact phone number")
	contact := fs.String("contact", "", "linked contact id")
	if err := fs.Parse(args[1:]); err != nil {
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
	// Only explicitly passed flags override the stored fields.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cur.Name = *name
		case "date":
			cur.Date = *date
		case "note":
			cur.Note = *note
		case "group":
			cur.Group = model.Group(*group)
		case "phone":
			cur.ContactPhoneNumber = *phone
		case "contact":
			cur.LinkedContactID = *contact
		}
	})

	updated, err := app.Service.Edit(ctx, cur)
	if err != nil {
		return err
	}
	turns := updated.Age + 1
	if updated.DaysLeft == 0 {
		turns = updated.Age
	}
	fmt.Fprintf(Out, "Updated %s: %s (in %d days, turns %d)\n",
		updated.Name, updated.Date, updated.DaysLeft, turns)
	return nil
}

func findActive(store repo.BirthdayRepository, id int64) (model.Birthday, error) {
	records, err := store.ListActive()
	if err != nil {
		return model.Birthday{}, err
	}
	for _, b := range records {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Birthday{}, fmt.Errorf("birthday %d: %w", id, repo.ErrNotFound)
}

func init() { RegisterCmd(editCmd{}) }
