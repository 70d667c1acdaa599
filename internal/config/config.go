// Package config loads layered configuration for gordap.
//
// Documents (config.json, tlds.json, tlds.txt) are resolved through an
// ordered list of sources, lowest precedence first: built-in defaults
// embedded in the binary, the system directory (/etc/gordap), and the
// user directory (~/.config/gordap). Within a source, a *.local.json
// variant beats the plain document, so downloaded updates never clobber
// hand-edited settings.
//
// The source list is injected, so tests run against in-memory sources
// instead of the real filesystem.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known endpoints.
const (
	// IANARDAPURL answers TLD queries directly.
	IANARDAPURL = "https://rdap.iana.org/"

	// Update endpoints for the refreshable documents.
	ConfigUpdateURL  = "https://raw.githubusercontent.com/jroosing/gordap/main/config/config.json"
	TLDsUpdateURL    = "https://raw.githubusercontent.com/jroosing/gordap/main/config/tlds.json"
	TLDListUpdateURL = "https://data.iana.org/TLD/tlds-alpha-by-domain.txt"
)

// Document names resolved through the source chain.
const (
	DocConfig    = "config.json"
	DocOverrides = "tlds.json"
	DocTLDList   = "tlds.txt"
)

// Loader resolves named documents through an ordered source chain.
type Loader struct {
	sources []Source // lowest precedence first
}

// NewLoader builds a loader over the given sources, lowest precedence
// first. At least one source is required.
func NewLoader(sources ...Source) (*Loader, error) {
	if len(sources) == 0 {
		return nil, errors.New("config: at least one source is required")
	}
	return &Loader{sources: sources}, nil
}

// DefaultLoader builds the production source chain:
// builtin < /etc/gordap < ~/.config/gordap.
func DefaultLoader() *Loader {
	l, _ := NewLoader(
		Builtin(),
		Dir(SystemDir()),
		Dir(UserDir()),
	)
	return l
}

// SystemDir is the system-wide configuration directory.
func SystemDir() string {
	return "/etc/gordap"
}

// UserDir is the per-user configuration directory.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gordap")
	}
	return filepath.Join(home, ".config", "gordap")
}

// CacheDir is the per-user default cache directory.
func CacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".gordap-cache"
	}
	return filepath.Join(dir, "gordap")
}

// lookup scans sources from highest to lowest precedence. Within each
// source the *.local variant of a .json document wins.
func (l *Loader) lookup(name string) ([]byte, bool) {
	names := []string{name}
	if strings.HasSuffix(name, ".json") {
		names = []string{strings.TrimSuffix(name, ".json") + ".local.json", name}
	}
	for i := len(l.sources) - 1; i >= 0; i-- {
		for _, n := range names {
			if data, ok := l.sources[i].Load(n); ok {
				return data, true
			}
		}
	}
	return nil, false
}

// Config resolves and validates the root configuration.
func (l *Loader) Config() (*Config, error) {
	data, ok := l.lookup(DocConfig)
	if !ok {
		return nil, errors.New("config: no source provides " + DocConfig)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", DocConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Overrides resolves the server override map (domain suffix -> server
// URL). The base map comes from the highest-precedence source providing
// tlds.json; every source's tlds.local.json is then merged on top,
// lowest precedence first, key by key.
func (l *Loader) Overrides() (map[string]string, error) {
	base := map[string]string{}

	for i := len(l.sources) - 1; i >= 0; i-- {
		if data, ok := l.sources[i].Load(DocOverrides); ok {
			if err := json.Unmarshal(data, &base); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", DocOverrides, err)
			}
			break
		}
	}

	local := "tlds.local.json"
	for _, src := range l.sources {
		data, ok := src.Load(local)
		if !ok {
			continue
		}
		overlay := map[string]string{}
		if err := json.Unmarshal(data, &overlay); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", local, err)
		}
		for k, v := range overlay {
			base[k] = v
		}
	}

	return base, nil
}

// TLDList resolves the known top-level domain list used by query type
// detection.
func (l *Loader) TLDList() (*TLDList, error) {
	data, ok := l.lookup(DocTLDList)
	if !ok {
		return nil, errors.New("config: no source provides " + DocTLDList)
	}
	return ParseTLDList(string(data)), nil
}

// Validate normalizes the configuration and rejects invalid values.
func (cfg *Config) Validate() error {
	// Bootstrap URLs default to the IANA registries.
	if cfg.Bootstrap.DNS == "" {
		cfg.Bootstrap.DNS = "https://data.iana.org/rdap/dns.json"
	}
	if cfg.Bootstrap.ASN == "" {
		cfg.Bootstrap.ASN = "https://data.iana.org/rdap/asn.json"
	}
	if cfg.Bootstrap.IPv4 == "" {
		cfg.Bootstrap.IPv4 = "https://data.iana.org/rdap/ipv4.json"
	}
	if cfg.Bootstrap.IPv6 == "" {
		cfg.Bootstrap.IPv6 = "https://data.iana.org/rdap/ipv6.json"
	}

	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 24 * 60 * 60
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = CacheDir()
	}

	if cfg.Client.TimeoutSeconds <= 0 {
		cfg.Client.TimeoutSeconds = 30
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}

	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("config: api.port must be 1..65535")
		}
	}
	if cfg.API.HistoryRetentionDays == 0 {
		cfg.API.HistoryRetentionDays = 90
	}

	return nil
}
