// Package transcript defines the transcript domain model, the provider
// capability boundary, and the structured result contract emitted by the
// fetch CLI.
package transcript

import "strings"

// Entry is a single timed caption line. Start and Duration are seconds
// from the beginning of the video.
type Entry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is an ordered caption track as reported by a provider.
// Entry order is the provider's chronological order and is preserved
// end to end.
type Transcript struct {
	Language string  `json:"language"`
	Entries  []Entry `json:"entries"`
}

// FullText concatenates entry texts in sequence order, joined by a
// single space.
func (t Transcript) FullText() string {
	parts := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, " ")
}
