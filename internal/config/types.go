package config

// BootstrapConfig holds the four well-known registry document URLs, one
// per query family.
type BootstrapConfig struct {
	DNS  string `json:"dns"`
	ASN  string `json:"asn"`
	IPv4 string `json:"ipv4"`
	IPv6 string `json:"ipv6"`
}

// CacheConfig controls the bootstrap registry cache.
type CacheConfig struct {
	TTLSeconds int64 `json:"ttl_seconds"`
	// Dir overrides the cache directory. Empty means the per-user
	// default (~/.cache/gordap).
	Dir string `json:"dir,omitempty"`
}

// ClientConfig controls query execution.
type ClientConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	// DisableReferral turns off following registrar referrals on
	// domain queries. Following is the default.
	DisableReferral bool `json:"disable_referral,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string `json:"level"`
	Structured       bool   `json:"structured"`
	StructuredFormat string `json:"structured_format"`
}

// APIConfig contains settings for the rdapd REST daemon.
//
// Note: APIKey is a secret and must not be echoed by API endpoints.
type APIConfig struct {
	Enabled     bool   `json:"enabled"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	APIKey      string `json:"api_key,omitempty"`
	HistoryPath string `json:"history_path,omitempty"`

	// HistoryRetentionDays bounds how long lookup history rows are
	// kept. Zero picks the default; a negative value keeps rows
	// forever.
	HistoryRetentionDays int `json:"history_retention_days,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Bootstrap BootstrapConfig `json:"bootstrap"`
	Cache     CacheConfig     `json:"cache"`
	Client    ClientConfig    `json:"client"`
	Logging   LoggingConfig   `json:"logging"`
	API       APIConfig       `json:"api"`
}
