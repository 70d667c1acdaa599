package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jroosing/gordap/internal/rdap"
)

func TestText_Domain(t *testing.T) {
	signed := true
	d := &rdap.Domain{
		ObjectClassName: "domain",
		LDHName:         "xn--bcher-kva.example",
		UnicodeName:     "bücher.example",
		Handle:          "DOM-1",
		Status:          []string{"active", "client transfer prohibited"},
		Events: []rdap.Event{
			{Action: "registration", Date: "1995-08-14T04:00:00Z"},
			{Action: "expiration", Date: "2026-08-13T04:00:00Z"},
		},
		SecureDNS:   &rdap.SecureDNS{DelegationSigned: &signed},
		Nameservers: []rdap.Nameserver{{LDHName: "a.iana-servers.net"}},
		Entities: []rdap.Entity{{
			Handle:     "REG-42",
			Roles:      []string{"registrar"},
			VCardArray: json.RawMessage(`["vcard",[["version",{},"text","4.0"],["fn",{},"text","Example Registrar Inc."]]]`),
		}},
	}

	out := Text(d)
	assert.Contains(t, out, "Domain: xn--bcher-kva.example (bücher.example)")
	assert.Contains(t, out, "Handle:     DOM-1")
	assert.Contains(t, out, "active, client transfer prohibited")
	assert.Contains(t, out, "Registered: 1995-08-14T04:00:00Z")
	assert.Contains(t, out, "Expires:    2026-08-13T04:00:00Z")
	assert.Contains(t, out, "DNSSEC:     signed")
	assert.Contains(t, out, "Nameserver: a.iana-servers.net")
	assert.Contains(t, out, "registrar: Example Registrar Inc.")
}

func TestText_EntityFallsBackToHandle(t *testing.T) {
	out := Text(&rdap.Entity{Handle: "ABC-123", Roles: []string{"abuse"}})
	assert.Contains(t, out, "Entity: ABC-123")
	assert.Contains(t, out, "Roles: abuse")
}

func TestText_Autnum(t *testing.T) {
	out := Text(&rdap.Autnum{StartAutnum: 15169, EndAutnum: 15169, Name: "GOOGLE", Country: "US"})
	assert.Contains(t, out, "AS Number: AS15169")
	assert.Contains(t, out, "Name:    GOOGLE")

	out = Text(&rdap.Autnum{StartAutnum: 64512, EndAutnum: 65534})
	assert.Contains(t, out, "AS Range: AS64512 - AS65534")
}

func TestText_IPNetwork(t *testing.T) {
	out := Text(&rdap.IPNetwork{
		StartAddress: "192.0.2.0",
		EndAddress:   "192.0.2.255",
		Name:         "TEST-NET-1",
		Type:         "DIRECT ALLOCATION",
	})
	assert.Contains(t, out, "IP Network: 192.0.2.0 - 192.0.2.255")
	assert.Contains(t, out, "TEST-NET-1")
}

func TestText_Error(t *testing.T) {
	out := Text(&rdap.ErrorResponse{
		ErrorCode:   429,
		Title:       "Too Many Requests",
		Description: []string{"try again later"},
	})
	assert.Contains(t, out, "Server error 429: Too Many Requests")
	assert.Contains(t, out, "try again later")
}

func TestText_SearchResults(t *testing.T) {
	out := Text(&rdap.DomainSearchResults{
		Domains: []rdap.Domain{{LDHName: "a.example"}, {LDHName: "b.example"}},
	})
	assert.Contains(t, out, "2 domains")
	assert.Contains(t, out, "a.example")
	assert.Contains(t, out, "b.example")
}

func TestText_Help(t *testing.T) {
	out := Text(&rdap.Help{
		Common: rdap.Common{Notices: []rdap.Notice{{
			Title:       "Terms of Use",
			Description: []string{"be gentle"},
		}}},
	})
	assert.Contains(t, out, "Terms of Use")
	assert.Contains(t, out, "be gentle")
}
