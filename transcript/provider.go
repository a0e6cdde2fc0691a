package transcript

import (
	"context"

	"github.com/halcyon-tools/ytfetch/videoid"
)

// Provider is the external transcript-retrieval capability. Given a
// validated video ID it returns the first usable caption track, honoring
// the preferred language codes in order when possible.
//
// Implementations must surface every failure as a *FetchError so callers
// can classify it; CodeOf falls back to NETWORK_ERROR for anything else.
// Any implementation may substitute behind this interface without
// affecting the CLI contract.
type Provider interface {
	Fetch(ctx context.Context, id videoid.ID, preferredLangs []string) (Transcript, error)
}
