package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/ticketboard/internal/model"
)

// AuthError indicates that the endpoint rejected the request's credentials.
// It is returned by source clients when a 401 or 403 response is received.
type AuthError struct {
	SourceType SourceType
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.SourceType, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// FetchError is the one failure kind a snapshot fetch can produce. It wraps
// the transport, decode or storage error that caused it.
type FetchError struct {
	SourceType SourceType
	Location   string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching snapshot from %s %s: %v", e.SourceType, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err (or any error in its chain) is a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// SourceType identifies the kind of snapshot source.
type SourceType string

const (
	SourceTypeAPI    SourceType = "api"
	SourceTypeFile   SourceType = "file"
	SourceTypeSQLite SourceType = "sqlite"
)

// Source is the read-only repository the board is built from.
type Source interface {
	// Type returns the source type identifier.
	Type() SourceType

	// Describe returns a short human-readable location (URL or path).
	Describe() string

	// FetchSnapshot retrieves every ticket and user in one call.
	FetchSnapshot(ctx context.Context) (*model.Snapshot, error)
}
