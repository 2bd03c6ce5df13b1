package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mediadirect/mediadirect/internal/blob"
	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/notify"
	"github.com/mediadirect/mediadirect/internal/services"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// MigrationEngine moves a submission's locally held assets onto the remote
// host. Each asset is uploaded into the owning assignment's staging
// collection, its local blob is deleted, and the asset row is rewritten to
// point at the host before the next asset is touched.
type MigrationEngine struct {
	host        services.HostService
	submissions SubmissionStore
	assignments AssignmentStore
	assets      AssetStore
	blobs       blob.Store
	notifier    notify.Notifier
	logger      *log.Logger
}

// NewMigrationEngine creates a MigrationEngine with the provided dependencies.
func NewMigrationEngine(
	host services.HostService,
	submissions SubmissionStore,
	assignments AssignmentStore,
	assets AssetStore,
	blobs blob.Store,
	notifier notify.Notifier,
	logger *log.Logger,
) *MigrationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MigrationEngine{
		host:        host,
		submissions: submissions,
		assignments: assignments,
		assets:      assets,
		blobs:       blobs,
		notifier:    notifier,
		logger:      logger,
	}
}

// MigrateSubmission uploads every pending asset of a submission to the host.
//
// Assets without a blob handle are already hosted and are skipped, so
// re-running a completed migration performs no uploads. The first failing
// asset aborts the run; assets persisted before the failure keep their hosted
// state and the partial result is returned with the error. The author is
// emailed only when a run finishes with every asset hosted and at least one
// asset was moved by this run.
func (e *MigrationEngine) MigrateSubmission(ctx context.Context, submissionID string, progress chan<- ProgressUpdate) (*MigrationResult, error) {
	if e.host == nil {
		return nil, fmt.Errorf("%w: host service not initialized", shared.ErrServiceUnavailable)
	}
	if !e.host.Authenticated() {
		return nil, fmt.Errorf("%w: no session with %s", shared.ErrNotAuthenticated, e.host.Name())
	}

	sendProgress(progress, resolveSubmissionUpdate(submissionID))

	submission, err := e.submissions.Get(submissionID)
	if err != nil {
		return nil, err
	}

	assignment, err := e.assignments.Get(submission.AssignmentID())
	if err != nil {
		return nil, err
	}

	assets, err := e.assets.ListBySubmission(submissionID)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{
		SubmissionID: submissionID,
		TotalAssets:  len(assets),
	}

	staging := assignment.StagingCollection()
	total := len(assets)

	for i, asset := range assets {
		if asset.BlobKey() == "" {
			sendProgress(progress, assetSkippedUpdate(i+1, total, asset))
			result.Skipped++
			continue
		}

		sendProgress(progress, uploadAssetUpdate(i+1, total, asset))

		if err := e.migrateAsset(ctx, staging, submission, asset); err != nil {
			e.logger.Error("asset migration failed, aborting submission",
				"submission", submissionID, "asset", asset.ID(), "error", err)
			return result, err
		}

		sendProgress(progress, assetHostedUpdate(i+1, total, asset))
		result.Migrated++
	}

	if result.Migrated > 0 {
		sendProgress(progress, notifyAuthorUpdate(submission))
		result.Notified = true
		if err := e.notifier.SubmissionMigrated(submission); err != nil {
			e.logger.Warn("failed to send migration email",
				"submission", submissionID, "error", err)
		}
	}

	e.logger.Info("submission migrated",
		"submission", submissionID, "migrated", result.Migrated, "skipped", result.Skipped)
	return result, nil
}

// migrateAsset uploads one asset and commits the handover: host URLs recorded,
// blob deleted, blob handle cleared, row saved. The save happens before the
// caller moves on so a later failure cannot undo this asset.
func (e *MigrationEngine) migrateAsset(ctx context.Context, collectionID string, submission *models.Submission, asset *models.Asset) error {
	body, err := e.blobs.Open(asset.BlobKey())
	if err != nil {
		return fmt.Errorf("failed to open blob '%s': %w", asset.BlobKey(), err)
	}

	media, err := e.host.Upload(ctx, services.UploadRequest{
		CollectionID: collectionID,
		AssetID:      asset.ID(),
		Title:        submission.Title(),
		Description:  submission.Caption(),
		Body:         body,
	})
	body.Close()
	if err != nil {
		return fmt.Errorf("failed to upload asset '%s': %w", asset.ID(), err)
	}

	if len(media.ContentURLs) == 0 {
		return fmt.Errorf("%w: upload of asset '%s' returned no content URLs", shared.ErrHostRequest, asset.ID())
	}

	asset.SetHostURL(media.EntryURL)
	asset.SetImageURL(media.ContentURLs[0])
	asset.SetThumbnailURL(smallestThumbnail(media.Thumbnails))

	if err := e.blobs.Delete(asset.BlobKey()); err != nil {
		e.logger.Warn("failed to delete blob after upload", "blob", asset.BlobKey(), "error", err)
	}
	asset.ClearBlobKey()

	if err := e.assets.Update(asset); err != nil {
		return fmt.Errorf("failed to save asset '%s': %w", asset.ID(), err)
	}

	return nil
}
