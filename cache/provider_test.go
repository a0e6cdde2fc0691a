package cache

import (
	"context"
	"testing"
	"time"

	"github.com/halcyon-tools/ytfetch/transcript"
	"github.com/halcyon-tools/ytfetch/videoid"
)

// countingProvider records fetch calls and returns a fixed outcome.
type countingProvider struct {
	calls int
	t     transcript.Transcript
	err   error
}

func (p *countingProvider) Fetch(ctx context.Context, id videoid.ID, preferredLangs []string) (transcript.Transcript, error) {
	p.calls++
	if p.err != nil {
		return transcript.Transcript{}, p.err
	}
	return p.t, nil
}

func TestCachedProvider_SecondFetchSkipsNetwork(t *testing.T) {
	store := newTestStore(t, time.Hour)
	next := &countingProvider{t: testTranscript()}
	provider := NewCachedProvider(store, next)
	ctx := context.Background()

	first, err := provider.Fetch(ctx, testVideoID, []string{"en"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	second, err := provider.Fetch(ctx, testVideoID, []string{"en"})
	if err != nil {
		t.Fatalf("Fetch() second call error = %v", err)
	}

	if next.calls != 1 {
		t.Errorf("underlying provider calls = %d, want 1", next.calls)
	}
	if first.FullText() != second.FullText() {
		t.Errorf("cached transcript differs: %q vs %q", first.FullText(), second.FullText())
	}
}

func TestCachedProvider_FailuresAreNotCached(t *testing.T) {
	store := newTestStore(t, time.Hour)
	next := &countingProvider{
		err: transcript.NewFetchError(transcript.CodeNoTranscript, "no transcript available for this video", nil),
	}
	provider := NewCachedProvider(store, next)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := provider.Fetch(ctx, testVideoID, nil); err == nil {
			t.Fatal("Fetch() error = nil, want error")
		}
	}
	if next.calls != 2 {
		t.Errorf("underlying provider calls = %d, want 2 (failures must pass through)", next.calls)
	}

	_, ok, err := store.Get(ctx, testVideoID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("failure outcome was cached")
	}
}

func TestCachedProvider_NilStorePassesThrough(t *testing.T) {
	next := &countingProvider{t: testTranscript()}
	provider := NewCachedProvider(nil, next)

	got, err := provider.Fetch(context.Background(), testVideoID, nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.FullText() != "Hello world" {
		t.Errorf("FullText() = %q", got.FullText())
	}
	if next.calls != 1 {
		t.Errorf("underlying provider calls = %d, want 1", next.calls)
	}
}
