// Package handlers implements the REST API endpoint handlers for the
// gordap daemon.
//
// Lookup endpoints mirror the protocol's path templates: one route per
// query kind, each accepting an optional ?server= override that
// bypasses bootstrap discovery. Every lookup is recorded in the
// history store when one is configured.
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/gordap/internal/client"
	"github.com/jroosing/gordap/internal/database"
	"github.com/jroosing/gordap/internal/query"
)

// Lookuper executes queries. *client.Client is the production
// implementation; tests substitute their own.
type Lookuper interface {
	Lookup(ctx context.Context, q query.Query) (*client.Result, error)
}

// Handler contains dependencies for API handlers.
type Handler struct {
	lookup    Lookuper
	db        *database.DB
	logger    *slog.Logger
	startTime time.Time
}

// New creates a Handler. db may be nil to disable history.
func New(lookup Lookuper, db *database.DB, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		lookup:    lookup,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}
