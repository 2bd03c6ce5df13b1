package tasks

import (
	"context"

	"github.com/mediadirect/mediadirect/internal/models"
	"github.com/mediadirect/mediadirect/internal/services"
)

// MigrationResult contains all data from one submission migration.
type MigrationResult struct {
	SubmissionID string // Submission whose assets were processed
	TotalAssets  int    // Assets attached to the submission
	Migrated     int    // Assets uploaded and persisted during this run
	Skipped      int    // Assets that were already hosted
	Notified     bool   // Whether the completion email was attempted
}

// ModerationResult contains all data from one moderation batch.
type ModerationResult struct {
	Status  models.ModerationStatus // Status applied to the batch
	Total   int                     // Assets in the batch
	Updated int                     // Assets moved and persisted before any failure
}

// SubmissionStore is the read surface the engines need over submissions.
// This abstraction allows for easier testing and decoupling from the
// SQLite-backed repositories.
type SubmissionStore interface {
	Get(id string) (*models.Submission, error)
}

// AssignmentStore is the read surface the engines need over assignments.
type AssignmentStore interface {
	Get(id string) (*models.Assignment, error)
}

// AssetStore is the read/write surface the engines need over assets.
type AssetStore interface {
	Get(id string) (*models.Asset, error)
	Update(asset *models.Asset) error
	ListBySubmission(submissionID string) ([]*models.Asset, error)
}

// CollectionManager moves entries between remote collections. Implemented by
// collections.Manager; inserts dedup against existing membership and evict
// when the destination is at capacity, removes no-op when the entry is absent.
type CollectionManager interface {
	InsertEntry(ctx context.Context, collectionID, assetID string) (*services.CollectionEntry, error)
	RemoveEntry(ctx context.Context, collectionID, assetID string) (bool, error)
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// smallestThumbnail returns the URL of the narrowest preview variant. Ties go
// to the earliest variant in the host's response order.
func smallestThumbnail(thumbs []services.Thumbnail) string {
	if len(thumbs) == 0 {
		return ""
	}

	best := thumbs[0]
	for _, t := range thumbs[1:] {
		if t.Width < best.Width {
			best = t
		}
	}
	return best.URL
}
