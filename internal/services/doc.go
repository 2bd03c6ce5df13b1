// Package services defines the boundary to the external media host that owns
// the remote collections.
//
// The [HostService] interface is the only way the rest of the system touches
// remote state. It deliberately exposes a small set of primitives - paginate,
// insert, delete, upload - because the collections are shared, externally
// owned, and offer no transactions. Everything stronger (idempotent insert,
// eviction on capacity, move between collections) is layered on top by
// internal/collections and internal/tasks.
//
// [MediaHostService] is the HTTP implementation. It carries its session token
// explicitly per client instance; token acquisition and refresh are outside
// this service. Outbound calls go through a shared rate limiter so a large
// migration cannot hammer the host API.
package services
