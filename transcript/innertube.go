package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/halcyon-tools/ytfetch/videoid"
)

const (
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	// Innertube client identity sent with player requests. The ANDROID
	// client returns caption tracks without consent or login walls.
	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"

	defaultUserAgent = "com.google.android.youtube/20.10.38 (Linux; U; Android 14) gzip"
	defaultTimeout   = 30 * time.Second
)

// InnertubeProvider fetches transcripts from YouTube's innertube player
// API and timedtext endpoint.
type InnertubeProvider struct {
	client    *http.Client
	userAgent string
	requestID string
	playerURL string
}

// InnertubeOption configures an InnertubeProvider.
type InnertubeOption func(*InnertubeProvider)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) InnertubeOption {
	return func(p *InnertubeProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithUserAgent overrides the User-Agent header on all requests.
func WithUserAgent(agent string) InnertubeOption {
	return func(p *InnertubeProvider) {
		if strings.TrimSpace(agent) != "" {
			p.userAgent = agent
		}
	}
}

// WithRequestID sets the X-Request-Id header correlating provider calls
// with one CLI invocation.
func WithRequestID(id string) InnertubeOption {
	return func(p *InnertubeProvider) {
		p.requestID = strings.TrimSpace(id)
	}
}

// NewInnertubeProvider creates a provider with a bounded default timeout.
func NewInnertubeProvider(opts ...InnertubeOption) *InnertubeProvider {
	p := &InnertubeProvider{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		playerURL: playerEndpoint,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// playerRequest is the innertube player call body.
type playerRequest struct {
	Context struct {
		Client struct {
			ClientName    string `json:"clientName"`
			ClientVersion string `json:"clientVersion"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

// playerResponse is the subset of the innertube player payload the
// provider inspects. Captions stays raw so an absent section can be
// distinguished from a present-but-empty one.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions json.RawMessage `json:"captions"`
}

type captionsSection struct {
	Renderer struct {
		CaptionTracks []captionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// captionTrack describes one available caption track. Kind is "asr" for
// auto-generated tracks.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// json3Body is the timedtext fmt=json3 payload.
type json3Body struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMS    int64 `json:"tStartMs"`
	DurationMS int64 `json:"dDurationMs"`
	Segs       []struct {
		UTF8 string `json:"utf8"`
	} `json:"segs"`
}

// Fetch retrieves the transcript for a video. It performs two HTTP
// calls: the player API to enumerate caption tracks, then the selected
// track's timedtext URL. Every failure is a *FetchError.
func (p *InnertubeProvider) Fetch(ctx context.Context, id videoid.ID, preferredLangs []string) (Transcript, error) {
	if p == nil {
		return Transcript{}, NewFetchError(CodeNetworkError, "transcript: innertube provider is nil", nil)
	}

	player, err := p.fetchPlayerResponse(ctx, id)
	if err != nil {
		return Transcript{}, err
	}

	tracks, err := tracksFromPlayerResponse(player)
	if err != nil {
		return Transcript{}, err
	}

	track := selectTrack(tracks, preferredLangs)

	entries, err := p.fetchTrackEntries(ctx, track.BaseURL)
	if err != nil {
		return Transcript{}, err
	}
	if len(entries) == 0 {
		return Transcript{}, NewFetchError(CodeNoTranscript, "transcript track is empty", nil)
	}

	return Transcript{
		Language: track.LanguageCode,
		Entries:  entries,
	}, nil
}

func (p *InnertubeProvider) fetchPlayerResponse(ctx context.Context, id videoid.ID) (playerResponse, error) {
	var reqBody playerRequest
	reqBody.Context.Client.ClientName = innertubeClientName
	reqBody.Context.Client.ClientVersion = innertubeClientVersion
	reqBody.VideoID = id.String()

	body, err := json.Marshal(reqBody)
	if err != nil {
		return playerResponse{}, NewFetchError(CodeNetworkError, "transcript: encode player request", err)
	}

	data, err := p.do(ctx, http.MethodPost, p.playerURL, bytes.NewReader(body))
	if err != nil {
		return playerResponse{}, err
	}

	return decodePlayerResponse(data)
}

func (p *InnertubeProvider) fetchTrackEntries(ctx context.Context, baseURL string) ([]Entry, error) {
	url := baseURL
	if !strings.Contains(url, "fmt=") {
		url += "&fmt=json3"
	}

	data, err := p.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return parseJSON3(data)
}

// do issues one HTTP request and classifies transport failures.
func (p *InnertubeProvider) do(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, NewFetchError(CodeNetworkError, "transcript: build request", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.requestID != "" {
		req.Header.Set("X-Request-Id", p.requestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewFetchError(CodeNetworkError, "transcript: request timed out", err)
		}
		return nil, NewFetchError(CodeNetworkError, "transcript: request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewFetchError(CodeNetworkError, "transcript: read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewFetchError(CodeVideoNotFound, "video not found", nil)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, NewFetchError(
			CodeNetworkError,
			fmt.Sprintf("transcript: unexpected status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			nil,
		)
	}

	return respBody, nil
}

// decodePlayerResponse parses the player payload and maps playability
// failures onto the taxonomy.
func decodePlayerResponse(data []byte) (playerResponse, error) {
	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return playerResponse{}, NewFetchError(CodeNetworkError, "transcript: decode player response", err)
	}

	switch player.PlayabilityStatus.Status {
	case "", "OK":
		return player, nil
	case "ERROR":
		reason := player.PlayabilityStatus.Reason
		if reason == "" {
			reason = "video not found or unavailable"
		}
		return playerResponse{}, NewFetchError(CodeVideoNotFound, reason, nil)
	case "LOGIN_REQUIRED", "UNPLAYABLE", "CONTENT_CHECK_REQUIRED", "AGE_CHECK_REQUIRED":
		reason := player.PlayabilityStatus.Reason
		if reason == "" {
			reason = "video is not playable: " + player.PlayabilityStatus.Status
		}
		return playerResponse{}, NewFetchError(CodeVideoNotFound, reason, nil)
	default:
		// Unknown playability states classify conservatively.
		return playerResponse{}, NewFetchError(
			CodeNetworkError,
			"transcript: unrecognized playability status "+player.PlayabilityStatus.Status,
			nil,
		)
	}
}

// tracksFromPlayerResponse distinguishes "transcripts disabled" (captions
// section absent entirely) from "no transcript" (section present but no
// usable tracks).
func tracksFromPlayerResponse(player playerResponse) ([]captionTrack, error) {
	if len(player.Captions) == 0 {
		return nil, NewFetchError(CodeTranscriptDisabled, "transcripts are disabled for this video", nil)
	}

	var section captionsSection
	if err := json.Unmarshal(player.Captions, &section); err != nil {
		return nil, NewFetchError(CodeNetworkError, "transcript: decode captions section", err)
	}

	tracks := make([]captionTrack, 0, len(section.Renderer.CaptionTracks))
	for _, track := range section.Renderer.CaptionTracks {
		if strings.TrimSpace(track.BaseURL) != "" {
			tracks = append(tracks, track)
		}
	}
	if len(tracks) == 0 {
		return nil, NewFetchError(CodeNoTranscript, "no transcript available for this video", nil)
	}
	return tracks, nil
}

// selectTrack picks the caption track to fetch: first a manually created
// track matching a preferred language in order, then an auto-generated
// match, then the first available track.
func selectTrack(tracks []captionTrack, preferredLangs []string) captionTrack {
	for _, lang := range preferredLangs {
		for _, track := range tracks {
			if track.LanguageCode == lang && track.Kind != "asr" {
				return track
			}
		}
	}
	for _, lang := range preferredLangs {
		for _, track := range tracks {
			if track.LanguageCode == lang {
				return track
			}
		}
	}
	return tracks[0]
}

// parseJSON3 converts a timedtext fmt=json3 payload into ordered entries.
// Events without text segments (styling and window events) are skipped.
func parseJSON3(data []byte) ([]Entry, error) {
	var body json3Body
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, NewFetchError(CodeNetworkError, "transcript: decode timedtext payload", err)
	}

	entries := make([]Entry, 0, len(body.Events))
	for _, event := range body.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		cleaned := strings.TrimSpace(strings.ReplaceAll(text.String(), "\n", " "))
		if cleaned == "" {
			continue
		}
		entries = append(entries, Entry{
			Text:     cleaned,
			Start:    float64(event.StartMS) / 1000,
			Duration: float64(event.DurationMS) / 1000,
		})
	}
	return entries, nil
}
