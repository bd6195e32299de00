package commands

import (
	"context"
	"fmt"
	"os"

	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/vcardio"
	"BirthdayKeeper/internal/config"
)

type importCmd struct{}

func (importCmd) Name() string        { return "import" }
func (importCmd) Description() string { return "Import birthdays from a vCard (.vcf) file" }
func (importCmd) Usage() string       { return "import <contacts.vcf>" }

func (importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	candidates, err := vcardio.ImportContacts(f)
	if err != nil {
		return fmt.Errorf("parse vcard: %w", err)
	}
	if len(candidates) == 0 {
		fmt.Fprintln(Out, "No contacts with birthdays found")
		return nil
	}

	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()

	// Contacts already linked to a record are skipped, so re-importing
	// the same file is safe.
	existing, err := app.Store.ListActive()
	if err != nil {
		return err
	}
	linked := make(map[string]bool, len(existing))
	for _, b := range existing {
		if b.LinkedContactID != "" {
			linked[b.LinkedContactID] = true
		}
	}

	added, skipped := 0, 0
	for _, c := range candidates {
		if c.LinkedContactID != "" && linked[c.LinkedContactID] {
			skipped++
			continue
		}
		if _, err := app.Service.Add(ctx, c); err != nil {
			fmt.Fprintf(Out, "Skipping %s: %v\n", c.Name, err)
			skipped++
			continue
		}
		added++
	}
	fmt.Fprintf(Out, "Imported %d birthdays (%d skipped)\n", added, skipped)
	return nil
}

func init() { RegisterCmd(importCmd{}) }
