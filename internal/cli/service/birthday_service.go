package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/model/view"
	"BirthdayKeeper/internal/cli/notify"
	"BirthdayKeeper/internal/cli/repo"
	"BirthdayKeeper/internal/cli/tasks"
)

// BirthdayService is the facade the presentation layer talks to. Every
// mutation lands in the local store synchronously; notification
// rescheduling and the reconciliation trigger run as fire-and-forget
// background tasks whose failure never fails the mutation.
type BirthdayService struct {
	store      repo.BirthdayRepository
	reconciler *Reconciler
	notifier   notify.Notifier
	settings   notify.Settings
	identity   IdentityProvider
	network    ConnectivityProvider
	runner     *tasks.Runner
	clock      Clock
	log        *zap.SugaredLogger
}

// NewBirthdayService wires the facade. All collaborators are explicit
// dependencies owned by the composition root; there is no process-wide
// instance.
func NewBirthdayService(
	store repo.BirthdayRepository,
	reconciler *Reconciler,
	notifier notify.Notifier,
	settings notify.Settings,
	identity IdentityProvider,
	network ConnectivityProvider,
	runner *tasks.Runner,
	clock Clock,
	log *zap.SugaredLogger,
) *BirthdayService {
	if clock == nil {
		clock = RealClock{}
	}
	return &BirthdayService{
		store:      store,
		reconciler: reconciler,
		notifier:   notifier,
		settings:   settings,
		identity:   identity,
		network:    network,
		runner:     runner,
		clock:      clock,
		log:        log,
	}
}

// Overview returns all active records with derived fields computed,
// partitioned into today's birthdays and the upcoming list sorted
// ascending by days left.
func (s *BirthdayService) Overview(ctx context.Context) (view.Overview, error) {
	records, err := s.store.ListActive()
	if err != nil {
		return view.Overview{}, fmt.Errorf("list birthdays: %w", err)
	}
	unsynced, err := s.store.HasUnsyncedChanges()
	if err != nil {
		return view.Overview{}, fmt.Errorf("check unsynced: %w", err)
	}

	now := s.clock.Now()
	ov := view.Overview{HasUnsyncedChanges: unsynced}
	for _, b := range records {
		b = WithDerived(b, now)
		if IsToday(b, now) {
			ov.Today = append(ov.Today, b)
		} else {
			ov.Upcoming = append(ov.Upcoming, b)
		}
	}
	sort.SliceStable(ov.Upcoming, func(i, j int) bool {
		return ov.Upcoming[i].DaysLeft < ov.Upcoming[j].DaysLeft
	})
	return ov, nil
}

// Add creates a record. Saved-locally is the user-visible contract:
// once Insert returns, the call has succeeded regardless of what the
// background scheduling and sync tasks do.
func (s *BirthdayService) Add(ctx context.Context, b model.Birthday) (model.Birthday, error) {
	date, err := model.NormalizeDate(b.Date)
	if err != nil {
		return model.Birthday{}, err
	}
	b.Date = date
	if err := b.Validate(); err != nil {
		return model.Birthday{}, err
	}
	created, err := s.store.Insert(b)
	if err != nil {
		return model.Birthday{}, fmt.Errorf("save birthday: %w", err)
	}
	s.scheduleReminders(created)
	s.TriggerSync(ctx)
	return WithDerived(created, s.clock.Now()), nil
}

// Edit updates a record, reschedules its reminders and triggers sync.
func (s *BirthdayService) Edit(ctx context.Context, b model.Birthday) (model.Birthday, error) {
	date, err := model.NormalizeDate(b.Date)
	if err != nil {
		return model.Birthday{}, err
	}
	b.Date = date
	if err := b.Validate(); err != nil {
		return model.Birthday{}, err
	}
	updated, err := s.store.Update(b)
	if err != nil {
		return model.Birthday{}, fmt.Errorf("update birthday: %w", err)
	}
	s.runner.Go("reschedule reminders", func() error {
		if err := s.notifier.CancelAll(updated.Name); err != nil {
			return err
		}
		_, err := s.notifier.Schedule(updated.Name, updated.Date, s.settings.Offsets())
		return err
	})
	s.TriggerSync(ctx)
	return WithDerived(updated, s.clock.Now()), nil
}

// Remove tombstones the record and triggers sync. Cancelling the
// person's reminders is the caller's job via the notifier.
func (s *BirthdayService) Remove(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(id); err != nil {
		return fmt.Errorf("delete birthday: %w", err)
	}
	s.TriggerSync(ctx)
	return nil
}

// TriggerSync fires a best-effort reconciliation pass in the
// background. A pass already in flight simply drops this trigger.
func (s *BirthdayService) TriggerSync(ctx context.Context) {
	s.runner.Go("sync", func() error {
		_, err := s.ReconcileNow(context.WithoutCancel(ctx))
		if errors.Is(err, ErrSyncInProgress) {
			return nil // a pass is already running; the next trigger retries
		}
		return err
	})
}

// ReconcileNow runs a reconciliation pass synchronously with the
// current identity and connectivity, and returns its report. Used by
// the sync command and by login/connectivity-restored triggers.
func (s *BirthdayService) ReconcileNow(ctx context.Context) (SyncReport, error) {
	owner, err := s.identity.CurrentUser()
	if err != nil {
		return SyncReport{Skipped: true, SkipReason: "identity unavailable"}, nil
	}
	sc := SyncContext{OwnerID: owner, IsOnline: s.network.IsOnline(ctx)}
	return s.reconciler.Reconcile(ctx, sc)
}

// HasUnsyncedChanges reports whether any local change awaits upload.
func (s *BirthdayService) HasUnsyncedChanges() (bool, error) {
	return s.store.HasUnsyncedChanges()
}

func (s *BirthdayService) scheduleReminders(b model.Birthday) {
	s.runner.Go("schedule reminders", func() error {
		_, err := s.notifier.Schedule(b.Name, b.Date, s.settings.Offsets())
		return err
	})
}
