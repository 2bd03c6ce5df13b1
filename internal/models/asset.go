package models

import (
	"fmt"
	"time"
)

// Asset is a single binary item belonging to a submission.
//
// An asset is either pending (blob key set, no host URL) or migrated (host
// URL set, blob key cleared). The two handles are mutually exclusive; the
// migration engine clears the blob key in the same mutation that records the
// host URL, and Validate rejects any state where both are present.
type Asset struct {
	id           string
	sequence     int
	submissionID string
	blobKey      string
	hostURL      string
	thumbnailURL string
	imageURL     string
	status       ModerationStatus
	claimed      bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAsset creates a pending Asset holding bytes at the given blob key.
func NewAsset(submissionID, blobKey string) *Asset {
	now := time.Now().UTC()
	return &Asset{
		submissionID: submissionID,
		blobKey:      blobKey,
		status:       StatusUnreviewed,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (a *Asset) ID() string               { return a.id }
func (a *Asset) Sequence() int            { return a.sequence }
func (a *Asset) SubmissionID() string     { return a.submissionID }
func (a *Asset) BlobKey() string          { return a.blobKey }
func (a *Asset) HostURL() string          { return a.hostURL }
func (a *Asset) ThumbnailURL() string     { return a.thumbnailURL }
func (a *Asset) ImageURL() string         { return a.imageURL }
func (a *Asset) Status() ModerationStatus { return a.status }
func (a *Asset) Claimed() bool            { return a.claimed }
func (a *Asset) CreatedAt() time.Time     { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time     { return a.updatedAt }
func (a *Asset) SetID(id string)          { a.id = id }
func (a *Asset) SetSequence(seq int)      { a.sequence = seq }
func (a *Asset) SetTimestamps(c, u time.Time) {
	a.createdAt = c
	a.updatedAt = u
}

// SetClaimed records the read-only "claimed" signal reported by the host.
func (a *Asset) SetClaimed(claimed bool) {
	a.claimed = claimed
	a.touch()
}

// SetStatus updates the moderation status.
func (a *Asset) SetStatus(status ModerationStatus) {
	a.status = status
	a.touch()
}

// SetHostURL records the asset's current location on the media host.
func (a *Asset) SetHostURL(url string) {
	a.hostURL = url
	a.touch()
}

// SetThumbnailURL records the preview image chosen from the host's response.
func (a *Asset) SetThumbnailURL(url string) {
	a.thumbnailURL = url
	a.touch()
}

// SetImageURL records the canonical full-size media URL.
func (a *Asset) SetImageURL(url string) {
	a.imageURL = url
	a.touch()
}

// SetBlobKey points the asset at local blob storage. Used only when loading
// from the database and at creation time.
func (a *Asset) SetBlobKey(key string) {
	a.blobKey = key
	a.touch()
}

// ClearBlobKey releases the local handle once the bytes live on the host.
func (a *Asset) ClearBlobKey() {
	a.blobKey = ""
	a.touch()
}

// Migrated reports whether the asset's bytes live on the media host.
func (a *Asset) Migrated() bool {
	return a.blobKey == "" && a.hostURL != ""
}

func (a *Asset) touch() {
	a.updatedAt = time.Now().UTC()
}

// Validate enforces the local/remote mutual exclusion invariant and checks
// the moderation status.
func (a *Asset) Validate() error {
	if a.submissionID == "" {
		return fmt.Errorf("asset requires a submission id")
	}
	if a.blobKey != "" && a.hostURL != "" {
		return fmt.Errorf("asset '%s' has both a blob key and a host URL", a.id)
	}
	if !a.status.Valid() {
		return fmt.Errorf("asset '%s' has unknown status '%s'", a.id, a.status)
	}
	return nil
}
