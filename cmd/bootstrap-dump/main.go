package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jroosing/gordap/internal/bootstrap"
	"github.com/jroosing/gordap/internal/cache"
	"github.com/jroosing/gordap/internal/config"
)

func main() {
	var (
		timeout = flag.Duration("timeout", 30*time.Second, "HTTP timeout for the registry download")
		noCache = flag.Bool("no-cache", false, "Bypass the on-disk registry cache")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: bootstrap-dump dns|asn|ipv4|ipv6\n")
		os.Exit(2)
	}

	family, err := parseFamily(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.DefaultLoader().Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fetcher := buildFetcher(cfg, *timeout, *noCache, logger)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reg, err := fetcher.Fetch(ctx, family)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch registry: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("VERSION: %s\n", reg.Version)
	if reg.Publication != "" {
		fmt.Printf("PUBLICATION: %s\n", reg.Publication)
	}
	if reg.Description != "" {
		fmt.Printf("DESCRIPTION: %s\n", reg.Description)
	}
	fmt.Printf("SERVICES: %d\n", len(reg.Services))

	for _, entry := range reg.Services {
		if len(entry) < 2 {
			continue
		}
		patterns := append([]string(nil), entry[0]...)
		sort.Strings(patterns)
		fmt.Printf("  %s\n", strings.Join(patterns, ", "))
		for _, u := range entry[1] {
			fmt.Printf("    -> %s\n", u)
		}
	}
}

func parseFamily(name string) (bootstrap.Family, error) {
	switch strings.ToLower(name) {
	case "dns":
		return bootstrap.FamilyDNS, nil
	case "asn", "autnum":
		return bootstrap.FamilyASN, nil
	case "ipv4":
		return bootstrap.FamilyIPv4, nil
	case "ipv6":
		return bootstrap.FamilyIPv6, nil
	default:
		return 0, fmt.Errorf("unknown registry %q (want dns, asn, ipv4 or ipv6)", name)
	}
}

func buildFetcher(cfg *config.Config, timeout time.Duration, noCache bool, logger *slog.Logger) *bootstrap.Fetcher {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	var disk *cache.FileCache
	if !noCache {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = config.CacheDir()
		}
		var err error
		disk, err = cache.NewFileCache(dir, ttl)
		if err != nil {
			logger.Warn("registry cache disabled", "dir", dir, "error", err)
		}
	}

	httpClient := &http.Client{Timeout: timeout}
	return bootstrap.NewFetcher(httpClient, cfg.Bootstrap, disk, ttl, logger)
}
