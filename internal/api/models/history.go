package models

import "time"

// HistoryEntryResponse is one recorded lookup.
type HistoryEntryResponse struct {
	ID         int64     `json:"id"`
	Query      string    `json:"query"`
	Kind       string    `json:"kind"`
	ServerURL  string    `json:"server_url,omitempty"`
	Outcome    string    `json:"outcome"`
	Class      string    `json:"class,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryResponse is the history listing.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
}
