package shared

import (
	"errors"
	"fmt"
)

// Sentinel errors for the submission moderation service.
//
// Permanent errors describe caller input that can never succeed on retry
// (unknown ids, invalid status values, violated preconditions). Transient
// errors describe remote-host or storage failures where the invoking task
// dispatcher is expected to retry the whole unit of work.
var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Permanent input errors
	ErrNotFound          = fmt.Errorf("record not found")
	ErrSubmissionMissing = fmt.Errorf("submission not found")
	ErrAssignmentMissing = fmt.Errorf("assignment not found")
	ErrAssetMissing      = fmt.Errorf("asset not found")
	ErrInvalidStatus     = fmt.Errorf("invalid moderation status")
	ErrNotMigrated       = fmt.Errorf("asset has not been moved to the media host")
	ErrMissingArgument   = fmt.Errorf("missing required argument")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("no media host session token configured")

	// Transient remote-host and service errors
	ErrHostRequest        = fmt.Errorf("media host request failed")
	ErrCollectionFull     = fmt.Errorf("collection capacity exceeded")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrEntryMissing       = fmt.Errorf("entry not found in collection")
)

var permanentErrors = []error{
	ErrNotFound,
	ErrSubmissionMissing,
	ErrAssignmentMissing,
	ErrAssetMissing,
	ErrInvalidStatus,
	ErrNotMigrated,
	ErrMissingArgument,
	ErrInvalidArgument,
	ErrNotAuthenticated,
}

// IsPermanent reports whether err is a caller-input error that can never
// succeed on retry. The task server uses this to decide whether the external
// dispatcher should re-invoke the unit of work.
func IsPermanent(err error) bool {
	for _, sentinel := range permanentErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
