package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/gordap/internal/query"
	"github.com/jroosing/gordap/internal/rdap"
)

func domainWithLink(name, rel, typ, href string) string {
	return fmt.Sprintf(
		`{"objectClassName":"domain","ldhName":%q,"links":[{"rel":%q,"type":%q,"href":%q}]}`,
		name, rel, typ, href)
}

func TestReferral_FollowedToRegistrar(t *testing.T) {
	registrar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domain/example.com", r.URL.Path)
		_, _ = w.Write([]byte(`{"objectClassName":"domain","ldhName":"example.com","handle":"REGISTRAR-VIEW"}`))
	}))
	defer registrar.Close()

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainWithLink(
			"example.com", "related", "application/rdap+json", registrar.URL+"/domain/example.com")))
	}))
	defer registry.Close()

	c := newTestClient(staticSource{mustURL(t, registry.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err)

	require.NotNil(t, res.Registrar, "referral record missing")
	dom := res.Registrar.(*rdap.Domain)
	assert.Equal(t, "REGISTRAR-VIEW", dom.Handle)
	assert.Equal(t, registrar.URL+"/domain/example.com", res.RegistrarURL.String())
}

func TestReferral_DomainPathLinkWithoutType(t *testing.T) {
	registrar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainBody("example.com")))
	}))
	defer registrar.Close()

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainWithLink(
			"example.com", "related", "", registrar.URL+"/domain/example.com")))
	}))
	defer registry.Close()

	c := newTestClient(staticSource{mustURL(t, registry.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err)
	assert.NotNil(t, res.Registrar)
}

func TestReferral_PlainJSONTypeLink(t *testing.T) {
	registrar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup/example.com", r.URL.Path)
		_, _ = w.Write([]byte(domainBody("example.com")))
	}))
	defer registrar.Close()

	// A plain application/json type on a non-standard path still
	// qualifies as a referral.
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainWithLink(
			"example.com", "related", "application/json", registrar.URL+"/lookup/example.com")))
	}))
	defer registry.Close()

	c := newTestClient(staticSource{mustURL(t, registry.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err)
	require.NotNil(t, res.Registrar)
	assert.Equal(t, registrar.URL+"/lookup/example.com", res.RegistrarURL.String())
}

func TestReferral_RegistrarEntityLinks(t *testing.T) {
	registrar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainBody("example.com")))
	}))
	defer registrar.Close()

	body := fmt.Sprintf(`{
		"objectClassName": "domain",
		"ldhName": "example.com",
		"entities": [
			{"objectClassName":"entity","handle":"ADMIN-1","roles":["administrative"],
			 "links":[{"rel":"related","type":"application/rdap+json","href":"https://ignored.example/domain/x"}]},
			{"objectClassName":"entity","handle":"REG-1","roles":["registrar"],
			 "links":[{"rel":"related","type":"application/rdap+json","href":%q}]}
		]
	}`, registrar.URL+"/domain/example.com")
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer registry.Close()

	// Note the administrative entity's link would have matched too;
	// only registrar-role entities are consulted.
	c := newTestClient(staticSource{mustURL(t, registry.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err)
	require.NotNil(t, res.Registrar)
	assert.Equal(t, registrar.URL+"/domain/example.com", res.RegistrarURL.String())
}

func TestReferral_SameHostSkipped(t *testing.T) {
	var hits atomic.Int64
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(domainWithLink(
			"example.com", "related", "application/rdap+json", srvURL+"/domain/example.com")))
	}))
	defer srv.Close()
	srvURL = srv.URL

	c := newTestClient(staticSource{mustURL(t, srv.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err)
	assert.Nil(t, res.Registrar)
	assert.Equal(t, int64(1), hits.Load(), "self-referral must not trigger a second fetch")
}

func TestReferral_FailureKeepsRegistryResult(t *testing.T) {
	registrar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer registrar.Close()

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainWithLink(
			"example.com", "related", "application/rdap+json", registrar.URL+"/domain/example.com")))
	}))
	defer registry.Close()

	c := newTestClient(staticSource{mustURL(t, registry.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err, "a failed referral must never fail the query")
	assert.NotNil(t, res.Registry)
	assert.Nil(t, res.Registrar)
}

func TestReferral_Disabled(t *testing.T) {
	var registrarHits atomic.Int64
	registrar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		registrarHits.Add(1)
	}))
	defer registrar.Close()

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainWithLink(
			"example.com", "related", "application/rdap+json", registrar.URL+"/domain/example.com")))
	}))
	defer registry.Close()

	c := New(staticSource{mustURL(t, registry.URL)}, Options{
		Logger:          quietLogger(),
		DisableReferral: true,
	})
	res, err := c.Lookup(context.Background(), query.New(query.KindDomain, "example.com"))
	require.NoError(t, err)
	assert.Nil(t, res.Registrar)
	assert.Equal(t, int64(0), registrarHits.Load())
}

func TestReferral_OnlyForDomainQueries(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"objectClassName":"entity","handle":"X",
			"links":[{"rel":"related","type":"application/rdap+json","href":"https://other.example/domain/x"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(staticSource{mustURL(t, srv.URL)})
	res, err := c.Lookup(context.Background(), query.New(query.KindEntity, "X"))
	require.NoError(t, err)
	assert.Nil(t, res.Registrar)
	assert.Equal(t, int64(1), hits.Load())
}
