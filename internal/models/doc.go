// Package models defines domain entities and persistence interfaces for the submission moderation service.
//
// The package contains the three persistent entities of the system:
//   - [Assignment] : A call for submissions, carrying the ids of the remote collections that hold its media
//   - [Submission] : One user response to an assignment, grouping a batch of assets
//   - [Asset] : A single binary item tracked from transient local storage through migration and moderation
//
// [ModerationStatus] classifies every migrated asset and selects the remote
// collection it lives in. An asset is in exactly one of the assignment's
// status collections at any observable time.
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and update tracking.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
