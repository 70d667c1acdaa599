// Package client executes queries against candidate servers. It owns
// all per-query network I/O: candidate iteration with last-error
// tracking, the terminal 404 short-circuit, registrar referral
// following for domain queries, and the IPv6 host-query fallback
// ladder.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jroosing/gordap/internal/pool"
	"github.com/jroosing/gordap/internal/query"
	"github.com/jroosing/gordap/internal/rdap"
)

// bodyBuffers recycles response body buffers across lookups. Decoding
// copies everything it keeps, so a buffer can go back as soon as the
// request is classified.
var bodyBuffers = pool.NewBuffers()

const (
	acceptHeader     = "application/rdap+json, application/json"
	defaultUserAgent = "gordap"
	defaultTimeout   = 30 * time.Second

	// Response documents are small; anything past this is not worth
	// buffering.
	maxBodySize = 32 << 20
)

// CandidateSource yields the ordered server URLs for a query.
// *bootstrap.Resolver is the production implementation.
type CandidateSource interface {
	Candidates(ctx context.Context, q query.Query) ([]*url.URL, error)
}

// Options configures a Client. The zero value is usable.
type Options struct {
	// HTTPClient overrides the transport. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Logger receives per-attempt debug and warn records. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// DisableReferral turns off registrar referral following for
	// domain queries.
	DisableReferral bool

	// UserAgent overrides the User-Agent header.
	UserAgent string
}

// Client executes queries. It is safe for concurrent use.
type Client struct {
	http           *http.Client
	source         CandidateSource
	logger         *slog.Logger
	followReferral bool
	userAgent      string
}

// New builds a client on top of a candidate source.
func New(source CandidateSource, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		http:           httpClient,
		source:         source,
		logger:         logger,
		followReferral: !opts.DisableReferral,
		userAgent:      userAgent,
	}
}

// Result is the outcome of one successful query. Registry is always
// set; Registrar is set only when a referral was followed successfully.
type Result struct {
	Registry    rdap.Record
	RegistryURL *url.URL

	Registrar    rdap.Record
	RegistrarURL *url.URL
}

// Lookup resolves candidate servers for q and executes it. An explicit
// server on the query skips resolution entirely and that one server is
// the whole candidate list.
func (c *Client) Lookup(ctx context.Context, q query.Query) (*Result, error) {
	var candidates []*url.URL
	if q.Server != nil {
		candidates = []*url.URL{q.Server}
	} else {
		var err error
		candidates, err = c.source.Candidates(ctx, q)
		if err != nil {
			return nil, err
		}
	}
	return c.Execute(ctx, q, candidates)
}

// execState drives the retry and referral policies. Keeping the
// transitions explicit makes the ladder ordering and termination
// auditable.
type execState int

const (
	stateQuery execState = iota
	stateLadder
	stateReferral
	stateDone
	stateFailed
)

// v6Ladder lists the prefix lengths tried, in order, when a server
// rejects a host-level IPv6 query with HTTP 400.
var v6Ladder = [...]int{64, 48, 32}

// Execute runs q against the candidate list. 2xx stops iteration with
// success, 404 stops it with ErrNotFound, and any other failure is
// remembered and the next candidate tried. When everything fails the
// last remembered error is returned, or ErrNoWorkingServers when the
// list was empty from the start.
func (c *Client) Execute(ctx context.Context, q query.Query, candidates []*url.URL) (*Result, error) {
	var (
		state     = stateQuery
		res       *Result
		err       error
		origErr   error
		ladderIdx int
	)
	for {
		switch state {
		case stateQuery:
			res, err = c.tryServers(ctx, q, candidates)
			switch {
			case err == nil:
				state = stateReferral
			case wantsV6Ladder(q, err):
				origErr = err
				ladderIdx = 0
				state = stateLadder
			default:
				state = stateFailed
			}

		case stateLadder:
			if ladderIdx == len(v6Ladder) {
				// Every rung failed; the caller sees the failure for
				// what they actually asked, not a retry artifact.
				err = origErr
				state = stateFailed
				break
			}
			bits := v6Ladder[ladderIdx]
			rewritten, ok := query.V6NetworkQuery(q.Raw, bits)
			if !ok {
				err = origErr
				state = stateFailed
				break
			}
			c.logger.Debug("retrying IPv6 query at network scope", "query", q.Raw, "prefix", bits)
			retry := q
			retry.Raw = rewritten
			res, err = c.tryServers(ctx, retry, candidates)
			if err == nil {
				state = stateDone
			} else {
				ladderIdx++
			}

		case stateReferral:
			if q.Kind == query.KindDomain && c.followReferral {
				c.follow(ctx, res)
			}
			state = stateDone

		case stateDone:
			return res, nil

		case stateFailed:
			return nil, err
		}
	}
}

// wantsV6Ladder reports whether a failed attempt qualifies for the
// network-scope retry: an IPv6 host query (no explicit prefix) rejected
// with HTTP 400.
func wantsV6Ladder(q query.Query, err error) bool {
	if q.Kind != query.KindIP || query.IsCIDR(q.Raw) || !strings.Contains(q.Raw, ":") {
		return false
	}
	var serr *ServerError
	return errors.As(err, &serr) && serr.StatusCode == http.StatusBadRequest
}

// tryServers iterates the candidate list, returning on the first
// success or definitive not-found.
func (c *Client) tryServers(ctx context.Context, q query.Query, candidates []*url.URL) (*Result, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: nothing registered for %s query %q", ErrNoWorkingServers, q.Kind, q.Raw)
	}

	var lastErr error
	for _, base := range candidates {
		u, err := q.ResolveURL(base)
		if err != nil {
			return nil, err
		}
		rec, err := c.do(ctx, u)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			c.logger.Warn("server attempt failed", "url", u.String(), "error", err)
			lastErr = err
			continue
		}
		c.logger.Debug("query answered", "url", u.String(), "class", rec.RecordClass())
		return &Result{Registry: rec, RegistryURL: u}, nil
	}
	return nil, lastErr
}

// do performs a single request and classifies its body. A decoded
// error document is authoritative over the HTTP status, so a 200
// carrying {"errorCode": 404} still comes back as ErrNotFound.
func (c *Client) do(ctx context.Context, u *url.URL) (rdap.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("client: building request for %s: %w", u, err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: request to %s: %w", u, err)
	}
	defer resp.Body.Close()

	buf := bodyBuffers.Get()
	defer bodyBuffers.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodySize)); err != nil {
		return nil, fmt.Errorf("client: reading response from %s: %w", u, err)
	}
	body := buf.Bytes()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFoundError(u, body)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		serr := &ServerError{URL: u.String(), StatusCode: resp.StatusCode}
		if er, ok := decodeErrorBody(body); ok {
			serr.RDAP = er
		}
		return nil, serr
	}

	rec, err := rdap.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("client: undecodable response from %s: %w", u, err)
	}
	// An error document on a success status is still the server's
	// answer. errorCode 404 keeps its not-found meaning; any other
	// code is returned as the record itself and stops iteration.
	if er, ok := rec.(*rdap.ErrorResponse); ok && er.ErrorCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	return rec, nil
}

func notFoundError(u *url.URL, body []byte) error {
	if er, ok := decodeErrorBody(body); ok && er.Title != "" {
		return fmt.Errorf("%w: %s (%s)", ErrNotFound, u, er.Title)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, u)
}

// decodeErrorBody pulls a structured error document out of a non-2xx
// body, best effort.
func decodeErrorBody(body []byte) (*rdap.ErrorResponse, bool) {
	rec, err := rdap.Decode(body)
	if err != nil {
		return nil, false
	}
	er, ok := rec.(*rdap.ErrorResponse)
	return er, ok
}
