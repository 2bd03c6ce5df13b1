// package services defines interface HostService for interacting with the media host HTTP API
package services

import (
	"context"
	"io"
)

// HostService defines the operations the synchronization engine needs from
// the remote media host. The host is shared, externally owned state; callers
// must treat every operation as a blocking network call that can race with
// other writers.
type HostService interface {
	// Authenticated reports whether the client holds a session token.
	// Checked once per unit of work, never per asset.
	Authenticated() bool

	// CollectionPage fetches one page of a collection's entry feed.
	// An empty cursor requests the first page.
	CollectionPage(ctx context.Context, collectionID, cursor string) (*CollectionPage, error)

	// InsertEntry adds an asset to a collection. The position is an advisory
	// hint; the host may place the entry elsewhere. A full collection is
	// reported as shared.ErrCollectionFull.
	InsertEntry(ctx context.Context, collectionID, assetID string, position int) (*CollectionEntry, error)

	// DeleteEntry removes one entry from its collection.
	DeleteEntry(ctx context.Context, entry *CollectionEntry) error

	// Upload streams asset bytes into a collection and returns the created
	// media's URLs and thumbnail variants.
	Upload(ctx context.Context, req UploadRequest) (*UploadedMedia, error)

	// Name returns the host's display name for logs.
	Name() string
}

// CollectionEntry is one item reference inside a remote collection.
type CollectionEntry struct {
	CollectionID string // Owning collection
	AssetID      string // The asset the entry points at
	EntryURL     string // Canonical URL of this entry on the host
	Claimed      bool   // Host-side content claim signal, read-only
}

// CollectionPage is one page of a collection feed plus the cursor for the
// next page. An empty NextCursor marks the final page.
type CollectionPage struct {
	Entries    []CollectionEntry
	NextCursor string
}

// Thumbnail is one preview variant returned by an upload.
type Thumbnail struct {
	URL   string `json:"url"`
	Width int    `json:"width"`
}

// UploadRequest carries everything needed to publish one asset.
type UploadRequest struct {
	CollectionID string
	AssetID      string
	Title        string
	Description  string
	Body         io.Reader // Asset bytes from blob storage
}

// UploadedMedia is the host's description of a freshly uploaded item.
type UploadedMedia struct {
	EntryURL    string      `json:"url"`
	ContentURLs []string    `json:"contentUrls"`
	Thumbnails  []Thumbnail `json:"thumbnails"`
}
