package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jroosing/gordap/internal/cache"
	"github.com/jroosing/gordap/internal/config"
	"github.com/jroosing/gordap/internal/query"
)

// Family selects one of the four well-known registry documents.
type Family int

const (
	// FamilyDNS covers domain queries.
	FamilyDNS Family = iota
	// FamilyASN covers autonomous system number queries.
	FamilyASN
	// FamilyIPv4 covers IPv4 address queries.
	FamilyIPv4
	// FamilyIPv6 covers IPv6 address queries.
	FamilyIPv6
)

// key doubles as the cache file name for the document.
func (f Family) key() string {
	switch f {
	case FamilyDNS:
		return "dns.json"
	case FamilyASN:
		return "asn.json"
	case FamilyIPv4:
		return "ipv4.json"
	default:
		return "ipv6.json"
	}
}

// Fetcher downloads bootstrap registry documents, with a memory layer
// and an optional disk cache in front of the network. Both caches hold
// only the four registry documents, never query responses.
type Fetcher struct {
	client *http.Client
	urls   config.BootstrapConfig
	disk   *cache.FileCache
	mem    *cache.Memory[Family, *Registry]
	logger *slog.Logger
}

// NewFetcher builds a fetcher. disk may be nil to skip persistence; ttl
// governs the memory layer (the disk cache carries its own).
func NewFetcher(client *http.Client, urls config.BootstrapConfig, disk *cache.FileCache, ttl time.Duration, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client: client,
		urls:   urls,
		disk:   disk,
		mem:    cache.NewMemory[Family, *Registry](4, ttl),
		logger: logger,
	}
}

// Fetch returns the registry for a family, consulting memory, then
// disk, then the network. Successful fetches are written back to both
// cache layers.
func (f *Fetcher) Fetch(ctx context.Context, family Family) (*Registry, error) {
	if reg, ok := f.mem.Get(family); ok {
		return reg, nil
	}

	if f.disk != nil {
		if data, ok := f.disk.Get(family.key()); ok {
			reg, err := ParseRegistry(data)
			if err == nil {
				f.mem.Set(family, reg)
				return reg, nil
			}
			// A corrupt cache entry falls through to the network.
			f.logger.Warn("discarding unparseable cached registry", "doc", family.key(), "error", err)
		}
	}

	data, err := f.download(ctx, family)
	if err != nil {
		return nil, err
	}
	reg, err := ParseRegistry(data)
	if err != nil {
		return nil, err
	}

	if f.disk != nil {
		if err := f.disk.Set(family.key(), data); err != nil {
			f.logger.Warn("caching registry failed", "doc", family.key(), "error", err)
		}
	}
	f.mem.Set(family, reg)
	return reg, nil
}

func (f *Fetcher) download(ctx context.Context, family Family) ([]byte, error) {
	var docURL string
	switch family {
	case FamilyDNS:
		docURL = f.urls.DNS
	case FamilyASN:
		docURL = f.urls.ASN
	case FamilyIPv4:
		docURL = f.urls.IPv4
	case FamilyIPv6:
		docURL = f.urls.IPv6
	}

	f.logger.Debug("fetching bootstrap registry", "url", docURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %s from %s", ErrRegistryFetch, resp.Status, docURL)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrRegistryFetch, err)
	}
	return data, nil
}

// Resolver produces the ordered candidate server list for a query by
// combining overrides, the well-known TLD authority, and the bootstrap
// registries.
type Resolver struct {
	fetcher   *Fetcher
	overrides *Overrides
	logger    *slog.Logger
}

// NewResolver builds a resolver. overrides may be nil.
func NewResolver(fetcher *Fetcher, overrides *Overrides, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{fetcher: fetcher, overrides: overrides, logger: logger}
}

// Candidates returns the ordered server URLs authoritative for q.
//
// TLD queries always go to the IANA registry. Domain queries consult
// the override index before any bootstrap fetch. Entity, help, and the
// search kinds cannot be bootstrapped and fail with
// ErrNeedExplicitServer. An empty (nil) result with a nil error means
// the registries simply have no server for the key.
func (r *Resolver) Candidates(ctx context.Context, q query.Query) ([]*url.URL, error) {
	switch q.Kind {
	case query.KindTLD:
		u, err := url.Parse(config.IANARDAPURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegistryFetch, err)
		}
		return []*url.URL{u}, nil

	case query.KindDomain:
		if u, ok := r.overrides.Lookup(q.Raw); ok {
			r.logger.Debug("override match", "domain", q.Raw, "server", u.String())
			return []*url.URL{u}, nil
		}
		reg, err := r.fetcher.Fetch(ctx, FamilyDNS)
		if err != nil {
			return nil, err
		}
		return MatchDomain(reg, q.Raw), nil

	case query.KindIP:
		family := FamilyIPv4
		if strings.Contains(q.Raw, ":") {
			family = FamilyIPv6
		}
		reg, err := r.fetcher.Fetch(ctx, family)
		if err != nil {
			return nil, err
		}
		return MatchIP(reg, q.Raw)

	case query.KindAutnum:
		reg, err := r.fetcher.Fetch(ctx, FamilyASN)
		if err != nil {
			return nil, err
		}
		return MatchASN(reg, q.Raw)

	default:
		return nil, fmt.Errorf("%w: %s queries need -server", ErrNeedExplicitServer, q.Kind)
	}
}
