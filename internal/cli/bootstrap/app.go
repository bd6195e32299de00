package bootstrap

import (
	"go.uber.org/zap"

	"BirthdayKeeper/internal/cli/notify"
	"BirthdayKeeper/internal/cli/repo"
	"BirthdayKeeper/internal/cli/repo/fs"
	"BirthdayKeeper/internal/cli/repo/keyring"
	"BirthdayKeeper/internal/cli/service"
	"BirthdayKeeper/internal/cli/tasks"
	"BirthdayKeeper/internal/config"
)

// App is the client composition root: every collaborator is built here
// once and passed down explicitly.
type App struct {
	Cfg      *config.Config
	Log      *zap.SugaredLogger
	Store    repo.BirthdayRepository
	Tokens   repo.TokenStore
	Users    repo.UserContextStore
	Notifier *notify.LocalNotifier
	Runner   *tasks.Runner
	Service  *service.BirthdayService

	cleanup func() error
}

// NewApp wires the whole client. The caller must Close it when done.
func NewApp(cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	store, cleanup, err := OpenBirthdayRepo(cfg)
	if err != nil {
		return nil, err
	}

	fsStore := fs.AuthFSStore{}
	tokens := keyring.AuthKeyringStore{Fallback: fsStore}
	remote := service.NewRemoteStoreHTTP(cfg, tokens)
	reconciler := service.NewReconciler(store, remote, log)
	runner := tasks.NewRunner(log)
	notifier := notify.NewLocalNotifier(log, nil)

	settingsPath, err := notify.SettingsPath()
	var settings notify.Settings
	if err != nil {
		settings = notify.DefaultSettings()
	} else if settings, err = notify.LoadSettings(settingsPath); err != nil {
		log.Warnw("notification settings unreadable, using defaults", "error", err)
		settings = notify.DefaultSettings()
	}

	var network service.ConnectivityProvider = service.ProbeConnectivity{Cfg: cfg}
	if cfg.Offline {
		network = service.StaticConnectivity(false)
	}

	svc := service.NewBirthdayService(
		store,
		reconciler,
		notifier,
		settings,
		service.StoredIdentity{Users: fsStore},
		network,
		runner,
		service.RealClock{},
		log,
	)

	return &App{
		Cfg:      cfg,
		Log:      log,
		Store:    store,
		Tokens:   tokens,
		Users:    fsStore,
		Notifier: notifier,
		Runner:   runner,
		Service:  svc,
		cleanup:  cleanup,
	}, nil
}

// Close waits for background tasks and releases the local store.
func (a *App) Close() error {
	a.Runner.Wait()
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
