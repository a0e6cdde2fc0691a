package transcript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/halcyon-tools/ytfetch/videoid"
)

// Machine-readable error codes. The taxonomy is closed: every failure a
// fetch invocation can produce maps to exactly one of these.
const (
	// CodeInvalidURL is returned when no well-formed video ID could be
	// extracted from the input.
	CodeInvalidURL = "INVALID_URL"
	// CodeTranscriptDisabled is returned when the uploader disabled
	// transcripts for the video.
	CodeTranscriptDisabled = "TRANSCRIPT_DISABLED"
	// CodeNoTranscript is returned when no transcript track exists.
	CodeNoTranscript = "NO_TRANSCRIPT"
	// CodeVideoNotFound is returned when the video ID does not correspond
	// to an existing video.
	CodeVideoNotFound = "VIDEO_NOT_FOUND"
	// CodeNetworkError is returned for transport failures, timeouts, and
	// any provider failure the mapping does not recognize.
	CodeNetworkError = "NETWORK_ERROR"
)

// FetchError is a structured fetch failure carrying a stable code from
// the closed taxonomy alongside a human-readable message.
type FetchError struct {
	Code    string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	code := strings.TrimSpace(e.Code)
	msg := strings.TrimSpace(e.Message)
	switch {
	case code == "" && msg == "":
		return CodeNetworkError
	case code == "":
		return msg
	case msg == "":
		return code
	default:
		return fmt.Sprintf("%s: %s", code, msg)
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewFetchError builds a FetchError. An empty code classifies as
// NETWORK_ERROR; an empty message falls back to the cause's text.
func NewFetchError(code, message string, cause error) *FetchError {
	cleanCode := strings.TrimSpace(code)
	if cleanCode == "" {
		cleanCode = CodeNetworkError
	}
	cleanMsg := strings.TrimSpace(message)
	if cleanMsg == "" && cause != nil {
		cleanMsg = cause.Error()
	}
	return &FetchError{
		Code:    cleanCode,
		Message: cleanMsg,
		Cause:   cause,
	}
}

// CodeOf maps any error to exactly one taxonomy code. The mapping is
// total: resolution failures classify as INVALID_URL, and ambiguous or
// unrecognized errors classify conservatively as NETWORK_ERROR.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) && fe != nil && strings.TrimSpace(fe.Code) != "" {
		return fe.Code
	}
	if errors.Is(err, videoid.ErrInvalid) {
		return CodeInvalidURL
	}
	return CodeNetworkError
}
