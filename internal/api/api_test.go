package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/gordap/internal/api/models"
	"github.com/jroosing/gordap/internal/client"
	"github.com/jroosing/gordap/internal/config"
	"github.com/jroosing/gordap/internal/database"
	"github.com/jroosing/gordap/internal/query"
	"github.com/jroosing/gordap/internal/rdap"
)

// stubLookuper returns a canned result or error and remembers the last
// query it was asked.
type stubLookuper struct {
	res  *client.Result
	err  error
	last query.Query
}

func (s *stubLookuper) Lookup(ctx context.Context, q query.Query) (*client.Result, error) {
	s.last = q
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

func domainResult(t *testing.T, name, server string) *client.Result {
	t.Helper()
	u, err := url.Parse(server)
	require.NoError(t, err)
	return &client.Result{
		Registry:    &rdap.Domain{ObjectClassName: "domain", LDHName: name},
		RegistryURL: u,
	}
}

func testServer(t *testing.T, stub *stubLookuper, db *database.DB, apiKey string) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.API.Enabled = true
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = 8080
	cfg.API.APIKey = apiKey
	return New(cfg, stub, db, nil)
}

func doRequest(t *testing.T, srv *Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := testServer(t, &stubLookuper{}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLookupDomain_Success(t *testing.T) {
	stub := &stubLookuper{res: domainResult(t, "example.com", "https://rdap.example/domain/example.com")}
	srv := testServer(t, stub, nil, "")

	w := doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "example.com", resp.Query)
	assert.Equal(t, "domain", resp.Kind)
	assert.Equal(t, "domain", resp.Registry.Class)
	assert.Equal(t, "https://rdap.example/domain/example.com", resp.Registry.ServerURL)
	assert.Nil(t, resp.Registrar)

	assert.Equal(t, query.KindDomain, stub.last.Kind)
	assert.Nil(t, stub.last.Server)
}

func TestLookupDomain_WithRegistrar(t *testing.T) {
	res := domainResult(t, "example.com", "https://registry.example/domain/example.com")
	regURL, _ := url.Parse("https://registrar.example/domain/example.com")
	res.Registrar = &rdap.Domain{ObjectClassName: "domain", LDHName: "example.com"}
	res.RegistrarURL = regURL

	srv := testServer(t, &stubLookuper{res: res}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Registrar)
	assert.Equal(t, "https://registrar.example/domain/example.com", resp.Registrar.ServerURL)
}

func TestLookupDomain_NotFound(t *testing.T) {
	srv := testServer(t, &stubLookuper{err: client.ErrNotFound}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/domain/nosuch.example", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookupDomain_UpstreamFailure(t *testing.T) {
	srv := testServer(t, &stubLookuper{err: client.ErrNoWorkingServers}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLookup_ExplicitServerParam(t *testing.T) {
	stub := &stubLookuper{res: domainResult(t, "example.com", "https://rdap.example/domain/example.com")}
	srv := testServer(t, stub, nil, "")

	w := doRequest(t, srv, http.MethodGet,
		"/api/v1/domain/example.com?server=https://custom.example/rdap/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.last.Server)
	assert.Equal(t, "custom.example", stub.last.Server.Host)
}

func TestLookup_BadServerParam(t *testing.T) {
	srv := testServer(t, &stubLookuper{}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com?server=not-a-url", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupIP_CIDRWildcardRoute(t *testing.T) {
	res := domainResult(t, "", "https://rdap.example/ip/10.0.0.0/8")
	res.Registry = &rdap.IPNetwork{ObjectClassName: "ip network", Handle: "NET-10"}
	stub := &stubLookuper{res: res}
	srv := testServer(t, stub, nil, "")

	w := doRequest(t, srv, http.MethodGet, "/api/v1/ip/10.0.0.0/8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, query.KindIP, stub.last.Kind)
	assert.Equal(t, "10.0.0.0/8", stub.last.Raw)
}

func TestLookupIP_ShorthandNormalized(t *testing.T) {
	res := domainResult(t, "", "https://rdap.example/ip/1.0.0.1")
	res.Registry = &rdap.IPNetwork{ObjectClassName: "ip network"}
	stub := &stubLookuper{res: res}
	srv := testServer(t, stub, nil, "")

	w := doRequest(t, srv, http.MethodGet, "/api/v1/ip/1.1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0.0.1", stub.last.Raw)
}

func TestLookupIP_Invalid(t *testing.T) {
	srv := testServer(t, &stubLookuper{}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/ip/not-an-ip", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIKey_Enforced(t *testing.T) {
	stub := &stubLookuper{res: domainResult(t, "example.com", "https://rdap.example/d")}
	srv := testServer(t, stub, nil, "sekrit")

	w := doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com",
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com",
		map[string]string{"X-API-Key": "sekrit"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistory_RecordedAndListed(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	stub := &stubLookuper{res: domainResult(t, "example.com", "https://rdap.example/domain/example.com")}
	srv := testServer(t, stub, db, "")

	require.Equal(t, http.StatusOK, doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com", nil).Code)
	stub.err = client.ErrNotFound
	stub.res = nil
	require.Equal(t, http.StatusNotFound, doRequest(t, srv, http.MethodGet, "/api/v1/domain/gone.example", nil).Code)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "gone.example", resp.Entries[0].Query)
	assert.Equal(t, "not_found", resp.Entries[0].Outcome)
	assert.Equal(t, "example.com", resp.Entries[1].Query)
	assert.Equal(t, "success", resp.Entries[1].Outcome)
	assert.Equal(t, "https://rdap.example/domain/example.com", resp.Entries[1].ServerURL)

	// Filter on one query string.
	w = doRequest(t, srv, http.MethodGet, "/api/v1/history?query=example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "example.com", resp.Entries[0].Query)
}

func TestHistory_DisabledWithoutStore(t *testing.T) {
	srv := testServer(t, &stubLookuper{}, nil, "")
	w := doRequest(t, srv, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHistory_BadLimit(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	srv := testServer(t, &stubLookuper{}, db, "")
	for _, limit := range []string{"0", "-3", "1001", "abc"} {
		w := doRequest(t, srv, http.MethodGet, "/api/v1/history?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit %q", limit)
	}
}

func TestStats(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	stub := &stubLookuper{res: domainResult(t, "example.com", "https://rdap.example/d")}
	srv := testServer(t, stub, db, "")
	require.Equal(t, http.StatusOK, doRequest(t, srv, http.MethodGet, "/api/v1/domain/example.com", nil).Code)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ServerStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.GoRoutines, 1)
	require.NotNil(t, resp.Lookups)
	assert.Equal(t, int64(1), resp.Lookups.Total)
	assert.Equal(t, int64(1), resp.Lookups.Success)
}
