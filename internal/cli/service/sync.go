package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"BirthdayKeeper/internal/cli/model"
	"BirthdayKeeper/internal/cli/repo"
)

// SyncContext carries the two inputs a reconciliation pass depends on,
// threaded in explicitly instead of being read from globals.
type SyncContext struct {
	OwnerID  string // empty means no identity present
	IsOnline bool
}

// ErrSyncInProgress is returned when a trigger arrives while a pass is
// already running. The trigger is dropped, not queued; callers
// re-trigger opportunistically on the next mutation or connectivity
// event.
var ErrSyncInProgress = errors.New("sync already in progress")

// SyncReport summarizes a reconciliation pass.
type SyncReport struct {
	Skipped    bool
	SkipReason string

	Uploaded  int // records pushed via upsert
	Deleted   int // tombstones pushed via delete
	Pulled    int // records where the remote version won the merge
	Dropped   int // tombstones physically removed after remote confirmation
	Committed int // records in the collection after the pass
}

// Reconciler is the only component allowed to reconcile divergent
// local/remote state. A single pass is in flight at a time.
type Reconciler struct {
	store  repo.BirthdayRepository
	remote RemoteStore
	log    *zap.SugaredLogger

	inFlight atomic.Bool
}

// NewReconciler wires the engine to its two stores.
func NewReconciler(store repo.BirthdayRepository, remote RemoteStore, log *zap.SugaredLogger) *Reconciler {
	return &Reconciler{store: store, remote: remote, log: log}
}

// Reconcile runs one pass: push unsynced local changes, pull the
// remote collection, merge last-writer-wins and commit the result.
// Transport failures abort the pass and are reported, never fatal;
// partial remote progress is not rolled back - the next pass picks up
// the remaining state.
func (r *Reconciler) Reconcile(ctx context.Context, sc SyncContext) (SyncReport, error) {
	if sc.OwnerID == "" {
		return SyncReport{Skipped: true, SkipReason: "no identity"}, nil
	}
	if !sc.IsOnline {
		return SyncReport{Skipped: true, SkipReason: "offline"}, nil
	}
	if !r.inFlight.CompareAndSwap(false, true) {
		return SyncReport{Skipped: true, SkipReason: "pass already in flight"}, ErrSyncInProgress
	}
	defer r.inFlight.Store(false)

	report := SyncReport{}

	unsynced, err := r.store.ListUnsynced()
	if err != nil {
		return report, fmt.Errorf("list unsynced: %w", err)
	}

	var toUpsert []model.Birthday
	var toDelete []string
	for _, b := range unsynced {
		if b.IsDeleted {
			toDelete = append(toDelete, b.SyncID)
			continue
		}
		if b.OwnerID == "" {
			b.OwnerID = sc.OwnerID // adopt pre-login records
		}
		toUpsert = append(toUpsert, b)
	}

	// uploadedAt remembers the exact revision that was pushed, so a
	// record mutated again mid-pass is not wrongly marked synced.
	uploadedAt := make(map[string]time.Time, len(toUpsert))
	if len(toUpsert) > 0 {
		if err := r.remote.UpsertMany(ctx, toUpsert); err != nil {
			r.log.Warnw("sync: upsert failed, pass aborted", "count", len(toUpsert), "error", err)
			return report, fmt.Errorf("upsert: %w", err)
		}
		for _, b := range toUpsert {
			uploadedAt[b.SyncID] = b.UpdatedAt
		}
		report.Uploaded = len(toUpsert)
	}

	confirmedDeletes := make(map[string]bool, len(toDelete))
	if len(toDelete) > 0 {
		if err := r.remote.DeleteMany(ctx, toDelete); err != nil {
			r.log.Warnw("sync: delete failed, pass aborted", "count", len(toDelete), "error", err)
			return report, fmt.Errorf("delete: %w", err)
		}
		for _, id := range toDelete {
			confirmedDeletes[id] = true
		}
		report.Deleted = len(toDelete)
	}

	remoteRecords, err := r.remote.List(ctx, sc.OwnerID)
	if err != nil {
		r.log.Warnw("sync: remote list failed, pass aborted", "error", err)
		return report, fmt.Errorf("remote list: %w", err)
	}

	local, err := r.store.ListAll()
	if err != nil {
		return report, fmt.Errorf("list all: %w", err)
	}

	merged := r.merge(local, remoteRecords, sc, uploadedAt, confirmedDeletes, &report)

	if err := r.store.ReplaceAll(merged); err != nil {
		return report, fmt.Errorf("commit merge: %w", err)
	}
	report.Committed = len(merged)
	r.log.Infow("sync: pass complete",
		"uploaded", report.Uploaded,
		"deleted", report.Deleted,
		"pulled", report.Pulled,
		"dropped", report.Dropped,
		"committed", report.Committed,
	)
	return report, nil
}

// merge applies last-writer-wins over the sync id join key. A strictly
// newer remote timestamp wins; ties keep the local copy, so identical
// data is never needlessly overwritten. Concurrent edits lose whole
// records to the newer writer - an accepted limitation, there is no
// field-level merge.
func (r *Reconciler) merge(
	local, remoteRecords []model.Birthday,
	sc SyncContext,
	uploadedAt map[string]time.Time,
	confirmedDeletes map[string]bool,
	report *SyncReport,
) []model.Birthday {
	remoteBySyncID := make(map[string]model.Birthday, len(remoteRecords))
	for _, b := range remoteRecords {
		remoteBySyncID[b.SyncID] = b
	}

	usedIDs := make(map[int64]bool, len(local))
	merged := make([]model.Birthday, 0, len(local)+len(remoteRecords))
	seen := make(map[string]bool, len(local))

	for _, l := range local {
		seen[l.SyncID] = true
		remote, onRemote := remoteBySyncID[l.SyncID]

		switch {
		case onRemote && remote.UpdatedAt.After(l.UpdatedAt):
			// Remote strictly newer: remote wins, local revision is dropped.
			remote.ID = l.ID // the numeric id is never renumbered
			remote.IsSynced = true
			remote.IsDeleted = false
			merged = append(merged, remote)
			report.Pulled++
		case !onRemote && l.IsDeleted && confirmedDeletes[l.SyncID]:
			// Deletion acknowledged this pass: the tombstone can go.
			report.Dropped++
			continue
		case !onRemote && l.IsSynced && !l.IsDeleted:
			// Previously synced and gone remotely: another device
			// deleted it, reflect that locally.
			report.Dropped++
			continue
		default:
			// Local copy kept: either already in sync, or it carries
			// unpushed changes that will be retried next pass.
			if t, ok := uploadedAt[l.SyncID]; ok && t.Equal(l.UpdatedAt) {
				l.IsSynced = true
			}
			if l.OwnerID == "" {
				l.OwnerID = sc.OwnerID
			}
			merged = append(merged, l)
		}
	}

	for _, m := range merged {
		usedIDs[m.ID] = true
	}

	// Remote records unknown locally (created on another device).
	for _, b := range remoteRecords {
		if seen[b.SyncID] {
			continue
		}
		for b.ID == 0 || usedIDs[b.ID] {
			b.ID++ // keep numeric ids unique within this store
		}
		usedIDs[b.ID] = true
		b.IsSynced = true
		b.IsDeleted = false
		merged = append(merged, b)
		report.Pulled++
	}

	return merged
}
