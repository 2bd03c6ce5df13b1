// Package collections manages capacity-bounded remote collections on the
// media host, hiding feed pagination and overflow handling from callers.
//
// The host's collections are shared, externally owned state with no locks and
// no transactions, so every mutation here follows a check-before-mutate
// discipline: inserts first look for an existing entry (duplicate-free,
// idempotent), removes treat an absent entry as a successful no-op, and a
// full collection is handled by evicting the entry the feed reports last -
// the logically oldest member - followed by exactly one retry. The single
// retry bound keeps a pathologically contended collection from triggering
// cascading deletions.
//
// [Pager] is the lazy feed traversal used by every lookup: forward-only,
// non-restartable, one page in memory at a time.
package collections
