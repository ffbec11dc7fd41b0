package analyzer

import (
	"errors"

	"go-seo-analyzer/internal/crawler"
	"go-seo-analyzer/internal/nlp"
)

// Failure kinds of an analysis. Returned errors wrap exactly one of them, so
// callers match with errors.Is and still see the original message.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrFetchFailed      = crawler.ErrFetch
	ErrParseFailed      = crawler.ErrParse
	ErrModelUnavailable = nlp.ErrModelUnavailable

	// ErrBusy is returned when an analysis is requested while another runs.
	ErrBusy = errors.New("an analysis is already running")
)

// Kind names used in logs, metrics and JSON error bodies.
const (
	KindInvalidInput     = "invalid_input"
	KindFetchFailed      = "fetch_failed"
	KindParseFailed      = "parse_failed"
	KindModelUnavailable = "model_unavailable"
	KindBusy             = "busy"
	KindInternal         = "internal"
)

// KindOf classifies err. A nil error has no kind.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrFetchFailed):
		return KindFetchFailed
	case errors.Is(err, ErrParseFailed):
		return KindParseFailed
	case errors.Is(err, ErrModelUnavailable):
		return KindModelUnavailable
	case errors.Is(err, ErrBusy):
		return KindBusy
	default:
		return KindInternal
	}
}
