package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"BirthdayKeeper/internal/cli/api"
	"BirthdayKeeper/internal/config"
)

// CredentialsRequest is the payload for both register and login.
type CredentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	login, password := args[0], args[1]
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/register"
	resp, body, err := api.PostJSON(ctx, endpoint, CredentialsRequest{Login: login, Password: password}, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		if err := persistAuth(resp, login); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		fmt.Fprintln(Out, "Registered and logged in as", login)
		syncAfterLogin(ctx, cfg)
		return nil
	case http.StatusConflict:
		return errors.New("login already taken")
	default:
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(registerCmd{}) }
