// Package server assembles the lookup stack and orchestrates the rdapd
// daemon's startup and shutdown.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jroosing/gordap/internal/bootstrap"
	"github.com/jroosing/gordap/internal/cache"
	"github.com/jroosing/gordap/internal/client"
	"github.com/jroosing/gordap/internal/config"
)

// StackOptions carry command-line overrides on top of the loaded
// configuration. Zero values mean "use the config".
type StackOptions struct {
	Timeout         time.Duration
	DisableReferral bool
	CacheDir        string

	// Config, when set, is used instead of loading the root document
	// from the loader. Callers use it to apply flag overrides.
	Config *config.Config
}

// Stack bundles the assembled resolution and execution components.
type Stack struct {
	Config   *config.Config
	TLDs     *config.TLDList
	Resolver *bootstrap.Resolver
	Client   *client.Client
}

// BuildStack loads configuration from the loader and wires the cache,
// fetcher, resolver, and client together. The CLI and the daemon share
// this assembly.
func BuildStack(loader *config.Loader, logger *slog.Logger, opts StackOptions) (*Stack, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = loader.Config()
		if err != nil {
			return nil, err
		}
	}
	overrides, err := loader.Overrides()
	if err != nil {
		return nil, err
	}
	tlds, err := loader.TLDList()
	if err != nil {
		return nil, err
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		cacheDir = cfg.Cache.Dir
	}
	if cacheDir == "" {
		cacheDir = config.CacheDir()
	}
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	// A cache that cannot be created is an inconvenience, not a
	// failure; the fetcher runs uncached.
	disk, err := cache.NewFileCache(cacheDir, ttl)
	if err != nil {
		logger.Warn("registry cache disabled", "dir", cacheDir, "error", err)
		disk = nil
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	fetcher := bootstrap.NewFetcher(httpClient, cfg.Bootstrap, disk, ttl, logger)
	resolver := bootstrap.NewResolver(fetcher, bootstrap.NewOverrides(overrides), logger)

	c := client.New(resolver, client.Options{
		HTTPClient:      httpClient,
		Logger:          logger,
		DisableReferral: opts.DisableReferral || cfg.Client.DisableReferral,
	})

	return &Stack{Config: cfg, TLDs: tlds, Resolver: resolver, Client: c}, nil
}
