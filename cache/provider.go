package cache

import (
	"context"

	"github.com/halcyon-tools/ytfetch/transcript"
	"github.com/halcyon-tools/ytfetch/videoid"
)

// CachedProvider decorates a transcript.Provider with the SQLite store.
// Only successful fetches are cached; failures always pass through so
// the error taxonomy is never masked by a stale entry.
type CachedProvider struct {
	store *Store
	next  transcript.Provider
}

// NewCachedProvider wraps next with cache lookups against store.
func NewCachedProvider(store *Store, next transcript.Provider) *CachedProvider {
	return &CachedProvider{
		store: store,
		next:  next,
	}
}

// Fetch serves the transcript from the store when present and fresh,
// otherwise delegates to the wrapped provider. Store write failures are
// swallowed: a broken cache must not fail an otherwise good fetch.
func (p *CachedProvider) Fetch(ctx context.Context, id videoid.ID, preferredLangs []string) (transcript.Transcript, error) {
	if p.store != nil {
		if cached, ok, err := p.store.Get(ctx, id); err == nil && ok {
			return cached, nil
		}
	}

	t, err := p.next.Fetch(ctx, id, preferredLangs)
	if err != nil {
		return transcript.Transcript{}, err
	}

	if p.store != nil {
		_ = p.store.Put(ctx, id, t)
	}
	return t, nil
}
