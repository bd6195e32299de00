package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"BirthdayKeeper/internal/cli/api"
	"BirthdayKeeper/internal/cli/bootstrap"
	"BirthdayKeeper/internal/cli/repo/fs"
	"BirthdayKeeper/internal/cli/repo/keyring"
	"BirthdayKeeper/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	login, password := args[0], args[1]
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/login"
	resp, body, err := api.PostJSON(ctx, endpoint, CredentialsRequest{Login: login, Password: password}, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		if err := persistAuth(resp, login); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		fmt.Fprintln(Out, "Logged in as", login)
		syncAfterLogin(ctx, cfg)
		return nil
	case http.StatusUnauthorized:
		return errors.New("invalid login or password")
	default:
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

// persistAuth stores the auth cookie and the login context.
func persistAuth(resp *http.Response, login string) error {
	token, err := api.AuthTokenFromResponse(resp)
	if err != nil {
		return err
	}
	fsStore := fs.AuthFSStore{}
	tokens := keyring.AuthKeyringStore{Fallback: fsStore}
	if err := tokens.Save(token); err != nil {
		return err
	}
	return fsStore.SaveLogin(login)
}

// syncAfterLogin runs one reconciliation pass so the fresh identity
// picks up its server data right away. Best effort: a failure here
// does not fail the login.
func syncAfterLogin(ctx context.Context, cfg *config.Config) {
	app, err := bootstrap.NewApp(cfg, newLogger())
	if err != nil {
		fmt.Fprintln(Out, "Note: initial sync skipped:", err)
		return
	}
	defer app.Close()
	report, err := app.Service.ReconcileNow(ctx)
	if err != nil {
		fmt.Fprintln(Out, "Note: initial sync failed:", err)
		return
	}
	if !report.Skipped {
		fmt.Fprintf(Out, "Synced: %d pushed, %d pulled\n", report.Uploaded, report.Pulled)
	}
}

func init() { RegisterCmd(loginCmd{}) }
