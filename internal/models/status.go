package models

import (
	"fmt"
	"strings"

	"github.com/mediadirect/mediadirect/internal/shared"
)

// ModerationStatus classifies an asset after it has been migrated to the
// media host. The status also determines which of the assignment's remote
// collections the asset currently lives in.
type ModerationStatus string

const (
	StatusUnreviewed ModerationStatus = "UNREVIEWED"
	StatusApproved   ModerationStatus = "APPROVED"
	StatusRejected   ModerationStatus = "REJECTED"
)

// ParseModerationStatus converts a case-insensitive status string into a
// ModerationStatus. An unrecognized value is a permanent input error.
func ParseModerationStatus(s string) (ModerationStatus, error) {
	switch ModerationStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusUnreviewed:
		return StatusUnreviewed, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("%w: '%s'", shared.ErrInvalidStatus, s)
	}
}

// Valid reports whether s is one of the three known statuses.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusUnreviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s ModerationStatus) String() string {
	return string(s)
}
