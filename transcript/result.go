package transcript

import (
	"encoding/json"
	"io"

	"github.com/halcyon-tools/ytfetch/videoid"
)

// Result is the single JSON object a fetch invocation writes to standard
// output. It is a tagged outcome: the success variant carries the
// transcript, the failure variant carries a message and a taxonomy code.
// Exactly one variant's fields are serialized.
type Result struct {
	Success    bool
	VideoID    string
	URL        string
	Transcript []Entry
	FullText   string
	Language   string
	ErrMessage string
	ErrCode    string
}

type successPayload struct {
	Success    bool    `json:"success"`
	VideoID    string  `json:"video_id"`
	URL        string  `json:"url"`
	Transcript []Entry `json:"transcript"`
	FullText   string  `json:"full_text"`
	Language   string  `json:"language"`
}

type failurePayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// MarshalJSON serializes the variant matching Success. The success
// variant always carries a transcript array, even when empty.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(failurePayload{
			Success:   false,
			Error:     r.ErrMessage,
			ErrorCode: r.ErrCode,
		})
	}
	entries := r.Transcript
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(successPayload{
		Success:    true,
		VideoID:    r.VideoID,
		URL:        r.URL,
		Transcript: entries,
		FullText:   r.FullText,
		Language:   r.Language,
	})
}

// ResultFor builds the success variant for a fetched transcript.
func ResultFor(id videoid.ID, t Transcript) Result {
	return Result{
		Success:    true,
		VideoID:    id.String(),
		URL:        id.WatchURL(),
		Transcript: t.Entries,
		FullText:   t.FullText(),
		Language:   t.Language,
	}
}

// ResultFromError builds the failure variant for any error. Construction
// is total: CodeOf guarantees a taxonomy code for every input.
func ResultFromError(err error) Result {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return Result{
		Success:    false,
		ErrMessage: message,
		ErrCode:    CodeOf(err),
	}
}

// WriteJSON writes the result as one two-space-indented JSON object
// followed by a newline.
func (r Result) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
