package analyze

import (
	"errors"
	"strings"
)

// Content bounds for a single analysis request. The lower bound filters out
// extractions too thin to analyze; the upper bound is the prompt budget.
const (
	MinContentLength = 100
	MaxContentLength = 100000
)

var (
	ErrEmptyContent    = errors.New("document content is empty")
	ErrContentTooShort = errors.New("document content is too short to analyze")
	ErrContentTooLong  = errors.New("document content exceeds the maximum length")
)

// ValidateContent enforces request-level preconditions. Callers must run it
// before Analyze; Analyze itself does not re-validate.
func ValidateContent(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyContent
	}
	if len(text) < MinContentLength {
		return ErrContentTooShort
	}
	if len(text) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}
