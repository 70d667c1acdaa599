package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// UpdateResult reports the per-document outcome of an Update run.
type UpdateResult struct {
	Updated []string          // document names written
	Errors  map[string]string // document name -> failure reason
}

// Ok reports whether at least one document was refreshed.
func (r UpdateResult) Ok() bool {
	return len(r.Updated) > 0
}

// Update downloads fresh copies of config.json, tlds.json, and tlds.txt
// into the user configuration directory. Each document is validated
// before the old file is replaced, and *.local.json files are never
// touched. Failures are per-document; one bad download does not abort
// the rest.
func Update(ctx context.Context, logger *slog.Logger) (UpdateResult, error) {
	dir := UserDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return UpdateResult{}, fmt.Errorf("config: creating %s: %w", dir, err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	result := UpdateResult{Errors: map[string]string{}}

	docs := []struct {
		name     string
		url      string
		validate func([]byte) error
	}{
		{DocConfig, ConfigUpdateURL, validateConfigDoc},
		{DocOverrides, TLDsUpdateURL, validateOverridesDoc},
		{DocTLDList, TLDListUpdateURL, validateTLDListDoc},
	}

	for _, doc := range docs {
		data, err := fetch(ctx, client, doc.url)
		if err == nil {
			err = doc.validate(data)
		}
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, doc.name), data, 0o644)
		}
		if err != nil {
			logger.Warn("config update failed", "doc", doc.name, "error", err)
			result.Errors[doc.name] = err.Error()
			continue
		}
		logger.Info("config updated", "doc", doc.name)
		result.Updated = append(result.Updated, doc.name)
	}

	return result, nil
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}

func validateConfigDoc(data []byte) error {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid config document: %w", err)
	}
	return cfg.Validate()
}

func validateOverridesDoc(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("invalid overrides document: %w", err)
	}
	return nil
}

func validateTLDListDoc(data []byte) error {
	list := ParseTLDList(string(data))
	if list.Len() == 0 {
		return fmt.Errorf("TLD list is empty")
	}
	return nil
}
