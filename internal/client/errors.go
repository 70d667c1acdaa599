package client

import (
	"errors"
	"fmt"

	"github.com/jroosing/gordap/internal/rdap"
)

var (
	// ErrNotFound means a server definitively answered that the record
	// does not exist. It is terminal: no further candidates are tried.
	ErrNotFound = errors.New("client: record not found")

	// ErrNoWorkingServers means no candidate server produced a usable
	// response and none returned a definitive not-found.
	ErrNoWorkingServers = errors.New("client: no working servers")
)

// ServerError is a non-2xx outcome from one server, carrying the
// structured error document when the body could be decoded as one.
type ServerError struct {
	URL        string
	StatusCode int
	RDAP       *rdap.ErrorResponse
}

func (e *ServerError) Error() string {
	if e.RDAP != nil && e.RDAP.Title != "" {
		return fmt.Sprintf("client: HTTP %d from %s: %s", e.StatusCode, e.URL, e.RDAP.Title)
	}
	return fmt.Sprintf("client: HTTP %d from %s", e.StatusCode, e.URL)
}
