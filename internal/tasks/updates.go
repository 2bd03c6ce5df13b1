package tasks

import (
	"fmt"

	"github.com/mediadirect/mediadirect/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ResolveSubmission Phase = iota
	UploadAssets
	MoveEntries
	NotifyAuthor
)

func (p Phase) String() string {
	switch p {
	case ResolveSubmission:
		return "resolve_submission"
	case UploadAssets:
		return "upload_assets"
	case MoveEntries:
		return "move_entries"
	case NotifyAuthor:
		return "notify_author"
	default:
		return ""
	}
}

func resolveSubmissionUpdate(submissionID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSubmission,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving submission %s...", submissionID),
	}
}

func uploadAssetUpdate(step, total int, asset *models.Asset) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadAssets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading asset %s...", step, total, asset.ID()),
	}
}

func assetHostedUpdate(step, total int, asset *models.Asset) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadAssets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Hosted: %s", step, total, asset.HostURL()),
		Data:    asset,
	}
}

func assetSkippedUpdate(step, total int, asset *models.Asset) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadAssets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Already hosted, skipping %s", step, total, asset.ID()),
	}
}

func moveEntryUpdate(step, total int, asset *models.Asset, status models.ModerationStatus) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MoveEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Marking asset %s as %s...", step, total, asset.ID(), status),
	}
}

func notifyAuthorUpdate(submission *models.Submission) ProgressUpdate {
	return ProgressUpdate{
		Phase:   NotifyAuthor,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Notifying %s...", submission.Author()),
	}
}
