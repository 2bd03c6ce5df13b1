package collections

import (
	"context"
	"fmt"

	"github.com/mediadirect/mediadirect/internal/services"
)

// Pager walks one collection's entry feed page by page.
//
// A Pager is forward-only and non-restartable: once exhausted it stays
// exhausted, and a fresh traversal needs a fresh Pager. Only the current
// page is held in memory.
type Pager struct {
	host         services.HostService
	collectionID string
	cursor       string
	started      bool
	done         bool
}

// NewPager creates a Pager positioned before the first page of the
// collection's feed.
func NewPager(host services.HostService, collectionID string) *Pager {
	return &Pager{host: host, collectionID: collectionID}
}

// HasMore reports whether another page can be fetched. True before the first
// fetch; an empty collection still serves exactly one (empty) page.
func (p *Pager) HasMore() bool {
	return !p.done
}

// Next fetches the next page of the feed. Calling Next on an exhausted pager
// is an error.
func (p *Pager) Next(ctx context.Context) (*services.CollectionPage, error) {
	if p.done {
		return nil, fmt.Errorf("feed for collection '%s' is exhausted", p.collectionID)
	}

	page, err := p.host.CollectionPage(ctx, p.collectionID, p.cursor)
	if err != nil {
		p.done = true
		return nil, err
	}

	p.started = true
	p.cursor = page.NextCursor
	if p.cursor == "" {
		p.done = true
	}

	return page, nil
}
