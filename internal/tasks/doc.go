// Package tasks orchestrates media synchronization between local submission
// storage and the remote host, with real-time progress reporting.
//
// # Core Operations
//
//  1. [MigrationEngine.MigrateSubmission] : Move a submission's assets to the host
//     - Resolves the submission and its owning assignment
//     - Uploads each locally held asset into the assignment's staging collection
//     - Records the host entry URL, full-size URL, and smallest thumbnail
//     - Deletes the local blob and clears its handle, saving after every asset
//     - Sends the author a completion email once every asset is hosted
//
//  2. [ModerationEngine.SetStatus] : Apply a moderation decision to a batch of assets
//     - Validates the target status and each asset's migrated state
//     - Inserts each asset into the collection mapped to the new status
//     - Removes it from whichever collection previously held it
//     - Persists the new status and host URL per asset
//     - Optionally emails the author about the decision
//
// # Progress Reporting
//
// Long-running operations accept an optional progress channel. The
// [ProgressUpdate] struct carries phase, step counters, and a display message.
// Sends use select with default so a slow consumer never stalls a transfer.
//
// # Failure Model
//
// Both engines stop at the first failing asset and return the partial result
// alongside the error. Work already persisted is never rolled back; re-running
// the same operation skips everything that previously completed.
package tasks
