package collections

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mediadirect/mediadirect/internal/services"
	"github.com/mediadirect/mediadirect/internal/shared"
)

// Manager wraps the host client with duplicate-free inserts, idempotent
// removes, and eviction when a collection hits its capacity ceiling.
type Manager struct {
	host   services.HostService
	logger *log.Logger
}

// NewManager creates a Manager over the given host client.
func NewManager(host services.HostService, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{host: host, logger: logger}
}

// FindEntry walks the collection's feed until it finds the entry for the
// given asset. Returns shared.ErrEntryMissing once every page has been
// visited without a match. Each call re-walks from the first page.
func (m *Manager) FindEntry(ctx context.Context, collectionID, assetID string) (*services.CollectionEntry, error) {
	pager := NewPager(m.host, collectionID)

	for pager.HasMore() {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}

		for i := range page.Entries {
			if page.Entries[i].AssetID == assetID {
				return &page.Entries[i], nil
			}
		}
	}

	return nil, fmt.Errorf("%w: asset '%s' in collection '%s'", shared.ErrEntryMissing, assetID, collectionID)
}

// FindLastEntry walks the feed to exhaustion and returns the final entry of
// the final page. Cost is linear in the collection size; callers should not
// put this on a hot path. Returns shared.ErrEntryMissing for an empty
// collection.
func (m *Manager) FindLastEntry(ctx context.Context, collectionID string) (*services.CollectionEntry, error) {
	pager := NewPager(m.host, collectionID)

	var last *services.CollectionEntry
	for pager.HasMore() {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}

		if n := len(page.Entries); n > 0 {
			last = &page.Entries[n-1]
		}
	}

	if last == nil {
		return nil, fmt.Errorf("%w: collection '%s' is empty", shared.ErrEntryMissing, collectionID)
	}

	return last, nil
}

// InsertEntry adds an asset to a collection at the head (position advisory).
//
// The insert is idempotent: if the asset is already present the existing
// entry is returned and nothing is written. When the host reports the
// collection full, the feed's last entry - its logically oldest member, since
// new entries go in at the head - is evicted and the insert retried exactly
// once. A second capacity failure, or a missing eviction target, fails the
// call; the manager never deletes more than one entry per insert.
func (m *Manager) InsertEntry(ctx context.Context, collectionID, assetID string) (*services.CollectionEntry, error) {
	return m.insertEntry(ctx, collectionID, assetID, true)
}

func (m *Manager) insertEntry(ctx context.Context, collectionID, assetID string, retryOnFull bool) (*services.CollectionEntry, error) {
	m.logger.Info("inserting asset into collection", "asset", assetID, "collection", collectionID)

	if existing, err := m.FindEntry(ctx, collectionID, assetID); err == nil {
		m.logger.Warn("asset already in collection", "asset", assetID, "collection", collectionID)
		return existing, nil
	} else if !errors.Is(err, shared.ErrEntryMissing) {
		return nil, err
	}

	entry, err := m.host.InsertEntry(ctx, collectionID, assetID, 0)
	if err == nil {
		return entry, nil
	}

	if !errors.Is(err, shared.ErrCollectionFull) {
		return nil, err
	}

	if !retryOnFull {
		return nil, fmt.Errorf("%w: collection '%s' still full after eviction", shared.ErrCollectionFull, collectionID)
	}

	m.logger.Info("collection full, evicting oldest entry and retrying", "collection", collectionID)

	last, lastErr := m.FindLastEntry(ctx, collectionID)
	if lastErr != nil {
		return nil, fmt.Errorf("failed to find eviction target: %w", lastErr)
	}

	if err := m.host.DeleteEntry(ctx, last); err != nil {
		return nil, fmt.Errorf("failed to evict entry: %w", err)
	}

	m.logger.Info("evicted oldest entry", "asset", last.AssetID, "collection", collectionID)

	return m.insertEntry(ctx, collectionID, assetID, false)
}

// RemoveEntry deletes the asset's entry from the collection. An absent entry
// is a successful no-op and returns false; a removed entry returns true.
func (m *Manager) RemoveEntry(ctx context.Context, collectionID, assetID string) (bool, error) {
	entry, err := m.FindEntry(ctx, collectionID, assetID)
	if err != nil {
		if errors.Is(err, shared.ErrEntryMissing) {
			m.logger.Warn("asset not in collection, nothing to remove", "asset", assetID, "collection", collectionID)
			return false, nil
		}
		return false, err
	}

	if err := m.host.DeleteEntry(ctx, entry); err != nil {
		return false, err
	}

	m.logger.Info("removed asset from collection", "asset", assetID, "collection", collectionID)
	return true, nil
}
