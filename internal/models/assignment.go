package models

import (
	"fmt"
	"time"
)

// Assignment groups submissions and carries the ids of the four remote
// collections that hold its media: a private staging collection for freshly
// migrated assets, and one collection per moderation status.
//
// Assignments are read-only for the synchronization engine; they are created
// and mutated through the admin surface, which is outside this service.
type Assignment struct {
	id                  string
	sequence            int
	description         string
	stagingCollection   string
	collectionsByStatus map[ModerationStatus]string
	createdAt           time.Time
	updatedAt           time.Time
}

// NewAssignment creates an Assignment bound to the given remote collection ids.
func NewAssignment(description, staging, unreviewed, approved, rejected string) *Assignment {
	now := time.Now().UTC()
	return &Assignment{
		description:       description,
		stagingCollection: staging,
		collectionsByStatus: map[ModerationStatus]string{
			StatusUnreviewed: unreviewed,
			StatusApproved:   approved,
			StatusRejected:   rejected,
		},
		createdAt: now,
		updatedAt: now,
	}
}

func (a *Assignment) ID() string            { return a.id }
func (a *Assignment) Sequence() int         { return a.sequence }
func (a *Assignment) Description() string   { return a.description }
func (a *Assignment) CreatedAt() time.Time  { return a.createdAt }
func (a *Assignment) UpdatedAt() time.Time  { return a.updatedAt }
func (a *Assignment) SetID(id string)       { a.id = id }
func (a *Assignment) SetSequence(seq int)   { a.sequence = seq }
func (a *Assignment) SetTimestamps(c, u time.Time) {
	a.createdAt = c
	a.updatedAt = u
}

// StagingCollection returns the private collection that receives assets as
// they are first migrated off local storage.
func (a *Assignment) StagingCollection() string {
	return a.stagingCollection
}

// CollectionFor returns the remote collection id that assets with the given
// status belong to.
func (a *Assignment) CollectionFor(status ModerationStatus) (string, error) {
	id, ok := a.collectionsByStatus[status]
	if !ok || id == "" {
		return "", fmt.Errorf("assignment '%s' has no collection for status %s", a.id, status)
	}
	return id, nil
}

// UnreviewedCollection returns the collection for newly moderatable assets.
func (a *Assignment) UnreviewedCollection() string { return a.collectionsByStatus[StatusUnreviewed] }

// ApprovedCollection returns the collection for approved assets.
func (a *Assignment) ApprovedCollection() string { return a.collectionsByStatus[StatusApproved] }

// RejectedCollection returns the collection for rejected assets.
func (a *Assignment) RejectedCollection() string { return a.collectionsByStatus[StatusRejected] }

// Validate checks that every remote collection the engine may need is bound.
func (a *Assignment) Validate() error {
	if a.stagingCollection == "" {
		return fmt.Errorf("assignment requires a staging collection id")
	}
	for _, status := range []ModerationStatus{StatusUnreviewed, StatusApproved, StatusRejected} {
		if a.collectionsByStatus[status] == "" {
			return fmt.Errorf("assignment requires a collection id for status %s", status)
		}
	}
	return nil
}
