package extractor

import (
	"errors"
	"fmt"
)

var (
	ErrDownload         = errors.New("download failed")
	ErrParse            = errors.New("parse failed")
	ErrInsufficientText = errors.New("insufficient text")
)

// Error is returned by Extract for any failure to obtain usable article text.
type Error struct {
	// Kind is one of ErrDownload, ErrParse or ErrInsufficientText.
	Kind error
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (URL = %s)", e.Kind, e.URL)
	}

	return fmt.Sprintf("%s (URL = %s): %s", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Cause returns the underlying failure text without the kind prefix.
func (e *Error) Cause() string {
	if e.Err == nil {
		return e.Kind.Error()
	}

	return e.Err.Error()
}
