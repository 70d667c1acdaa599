package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/gordap/internal/api/models"
	"github.com/jroosing/gordap/internal/bootstrap"
	"github.com/jroosing/gordap/internal/client"
	"github.com/jroosing/gordap/internal/database"
	"github.com/jroosing/gordap/internal/query"
)

// LookupDomain handles GET /api/v1/domain/:name.
func (h *Handler) LookupDomain(c *gin.Context) {
	h.doLookup(c, query.KindDomain, c.Param("name"))
}

// LookupTLD handles GET /api/v1/tld/:name.
func (h *Handler) LookupTLD(c *gin.Context) {
	h.doLookup(c, query.KindTLD, c.Param("name"))
}

// LookupIP handles GET /api/v1/ip/*addr. The wildcard keeps CIDR
// queries in one route; gin hands the leading slash back to us.
func (h *Handler) LookupIP(c *gin.Context) {
	addr := strings.TrimPrefix(c.Param("addr"), "/")
	norm, ok := query.NormalizeIP(addr)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid IP address or CIDR: " + addr})
		return
	}
	h.doLookup(c, query.KindIP, norm)
}

// LookupAutnum handles GET /api/v1/autnum/:number.
func (h *Handler) LookupAutnum(c *gin.Context) {
	h.doLookup(c, query.KindAutnum, c.Param("number"))
}

// LookupEntity handles GET /api/v1/entity/:handle.
func (h *Handler) LookupEntity(c *gin.Context) {
	h.doLookup(c, query.KindEntity, c.Param("handle"))
}

// LookupNameserver handles GET /api/v1/nameserver/:name.
func (h *Handler) LookupNameserver(c *gin.Context) {
	h.doLookup(c, query.KindNameserver, c.Param("name"))
}

func (h *Handler) doLookup(c *gin.Context, kind query.Kind, raw string) {
	q := query.New(kind, raw)

	if s := c.Query("server"); s != "" {
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid server URL: " + s})
			return
		}
		q = q.WithServer(u)
	}

	start := time.Now()
	res, err := h.lookup.Lookup(c.Request.Context(), q)
	h.record(c, q, res, err, time.Since(start))

	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, client.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, bootstrap.ErrInvalidQuery),
			errors.Is(err, bootstrap.ErrNeedExplicitServer):
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp := models.LookupResponse{
		Query: q.Raw,
		Kind:  q.Kind.String(),
		Registry: models.RecordEnvelope{
			Class:     string(res.Registry.RecordClass()),
			ServerURL: res.RegistryURL.String(),
			Record:    res.Registry,
		},
	}
	if res.Registrar != nil {
		resp.Registrar = &models.RecordEnvelope{
			Class:     string(res.Registrar.RecordClass()),
			ServerURL: res.RegistrarURL.String(),
			Record:    res.Registrar,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// record writes the lookup to the history store, best effort.
func (h *Handler) record(c *gin.Context, q query.Query, res *client.Result, lookupErr error, took time.Duration) {
	if h.db == nil {
		return
	}

	entry := database.HistoryEntry{
		Query:      q.Raw,
		Kind:       q.Kind.String(),
		DurationMS: took.Milliseconds(),
	}
	switch {
	case lookupErr == nil:
		entry.Outcome = database.OutcomeSuccess
		entry.Class = string(res.Registry.RecordClass())
		entry.ServerURL = res.RegistryURL.String()
	case errors.Is(lookupErr, client.ErrNotFound):
		entry.Outcome = database.OutcomeNotFound
	default:
		entry.Outcome = database.OutcomeError
	}

	if err := h.db.RecordLookup(c.Request.Context(), entry); err != nil {
		h.logger.Warn("recording lookup failed", "query", q.Raw, "error", err)
	}
}
