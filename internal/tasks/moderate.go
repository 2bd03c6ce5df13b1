package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/notify"
	"github.com/mediadirect/mediadirect/internal/services"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// ModerationEngine applies moderation decisions to hosted assets. A decision
// moves the asset's host entry into the collection mapped to the new status
// and persists the status change locally.
type ModerationEngine struct {
	host        services.HostService
	collections CollectionManager
	submissions SubmissionStore
	assignments AssignmentStore
	assets      AssetStore
	notifier    notify.Notifier

	// moderationEmail mirrors the admin toggle: when false, authors are not
	// emailed about individual decisions.
	moderationEmail bool
	logger          *log.Logger
}

// NewModerationEngine creates a ModerationEngine with the provided dependencies.
func NewModerationEngine(
	host services.HostService,
	collections CollectionManager,
	submissions SubmissionStore,
	assignments AssignmentStore,
	assets AssetStore,
	notifier notify.Notifier,
	moderationEmail bool,
	logger *log.Logger,
) *ModerationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ModerationEngine{
		host:            host,
		collections:     collections,
		submissions:     submissions,
		assignments:     assignments,
		assets:          assets,
		notifier:        notifier,
		moderationEmail: moderationEmail,
		logger:          logger,
	}
}

// SetStatus applies one moderation status to a batch of assets in input order.
//
// Every asset must already be hosted: an asset that still holds a blob handle
// or has no host URL stops the whole batch with shared.ErrNotMigrated. Assets
// processed before the stop keep their new status; nothing is rolled back.
// Per asset, the entry is inserted into the status's collection first and only
// then removed from wherever it previously lived, so a crash between the two
// leaves a duplicate rather than a lost entry. Re-running a batch is safe:
// inserts dedup and removes no-op.
func (e *ModerationEngine) SetStatus(ctx context.Context, assetIDs []string, status models.ModerationStatus, progress chan<- ProgressUpdate) (*ModerationResult, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: moderation status '%s'", shared.ErrInvalidStatus, status)
	}
	if e.host == nil {
		return nil, fmt.Errorf("%w: host service not initialized", shared.ErrServiceUnavailable)
	}
	if !e.host.Authenticated() {
		return nil, fmt.Errorf("%w: no session with %s", shared.ErrNotAuthenticated, e.host.Name())
	}

	result := &ModerationResult{
		Status: status,
		Total:  len(assetIDs),
	}

	for i, id := range assetIDs {
		asset, err := e.assets.Get(id)
		if err != nil {
			return result, err
		}

		if !asset.Migrated() {
			return result, fmt.Errorf("%w: asset '%s' is not hosted yet", shared.ErrNotMigrated, id)
		}

		sendProgress(progress, moveEntryUpdate(i+1, len(assetIDs), asset, status))

		submission, err := e.submissions.Get(asset.SubmissionID())
		if err != nil {
			return result, err
		}

		assignment, err := e.assignments.Get(submission.AssignmentID())
		if err != nil {
			return result, err
		}

		entry, err := e.moveEntry(ctx, assignment, asset, status)
		if err != nil {
			e.logger.Error("failed to move asset between collections",
				"asset", id, "status", status, "error", err)
			return result, err
		}

		asset.SetStatus(status)
		asset.SetHostURL(entry.EntryURL)
		asset.SetClaimed(entry.Claimed)

		if err := e.assets.Update(asset); err != nil {
			return result, fmt.Errorf("failed to save asset '%s': %w", id, err)
		}
		result.Updated++

		if e.moderationEmail {
			if err := e.notifier.ModerationResult(submission, asset, status); err != nil {
				e.logger.Warn("failed to send moderation email", "asset", id, "error", err)
			}
		}
	}

	e.logger.Info("moderation batch applied", "status", status, "updated", result.Updated)
	return result, nil
}

// moveEntry inserts the asset into the destination collection and clears it
// out of the collections it may previously have occupied. A freshly migrated
// asset sits in the staging collection; a re-moderated one sits in its old
// status's collection. Both are checked, and removals of absent entries are
// no-ops.
func (e *ModerationEngine) moveEntry(ctx context.Context, assignment *models.Assignment, asset *models.Asset, status models.ModerationStatus) (*services.CollectionEntry, error) {
	dest, err := assignment.CollectionFor(status)
	if err != nil {
		return nil, err
	}

	entry, err := e.collections.InsertEntry(ctx, dest, asset.ID())
	if err != nil {
		return nil, err
	}

	for _, col := range previousCollections(assignment, asset.Status(), dest) {
		if _, err := e.collections.RemoveEntry(ctx, col, asset.ID()); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// previousCollections lists the collections an asset could be leaving,
// deduplicated and excluding the destination.
func previousCollections(assignment *models.Assignment, previous models.ModerationStatus, dest string) []string {
	candidates := []string{assignment.StagingCollection()}
	if col, err := assignment.CollectionFor(previous); err == nil {
		candidates = append(candidates, col)
	}

	seen := map[string]bool{dest: true}
	var cols []string
	for _, col := range candidates {
		if col == "" || seen[col] {
			continue
		}
		seen[col] = true
		cols = append(cols, col)
	}
	return cols
}
