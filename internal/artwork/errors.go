package artwork

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// ErrorKind is the stage at which an album-art fetch failed.
type ErrorKind int

const (
	// KindNetwork covers request construction, throttling and transport failures
	KindNetwork ErrorKind = iota
	// KindHTTP means the server answered with a non-200 status
	KindHTTP
	// KindRead means the response body could not be read
	KindRead
	// KindDecode means the body was not a supported image
	KindDecode
)

// String returns a human-readable name for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindRead:
		return "read"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// FetchError describes a failed album-art fetch.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int // set for KindHTTP
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("album art %s error for %s: status %d", e.Kind, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("album art %s error for %s: %v", e.Kind, e.URL, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err was caused by a request or context deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// KindOf returns the fetch stage of err, and false when err is not a FetchError.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
