// Package render formats classified records as compact text for the
// CLI. JSON output modes bypass this package entirely.
package render

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jroosing/gordap/internal/rdap"
)

// Text renders a record as a human-readable summary.
func Text(rec rdap.Record) string {
	var b strings.Builder
	switch r := rec.(type) {
	case *rdap.Domain:
		domain(&b, r)
	case *rdap.Entity:
		entity(&b, r, "")
	case *rdap.Nameserver:
		nameserver(&b, r, "")
	case *rdap.Autnum:
		autnum(&b, r)
	case *rdap.IPNetwork:
		network(&b, r)
	case *rdap.ErrorResponse:
		errorDoc(&b, r)
	case *rdap.DomainSearchResults:
		fmt.Fprintf(&b, "%d domains\n", len(r.Domains))
		for i := range r.Domains {
			fmt.Fprintf(&b, "  %s\n", displayName(r.Domains[i].LDHName, r.Domains[i].UnicodeName))
		}
	case *rdap.EntitySearchResults:
		fmt.Fprintf(&b, "%d entities\n", len(r.Entities))
		for i := range r.Entities {
			entity(&b, &r.Entities[i], "  ")
		}
	case *rdap.NameserverSearchResults:
		fmt.Fprintf(&b, "%d nameservers\n", len(r.Nameservers))
		for i := range r.Nameservers {
			nameserver(&b, &r.Nameservers[i], "  ")
		}
	case *rdap.Help:
		help(&b, r)
	default:
		fmt.Fprintf(&b, "%s record\n", rec.RecordClass())
	}
	return b.String()
}

func domain(b *strings.Builder, d *rdap.Domain) {
	fmt.Fprintf(b, "Domain: %s\n", displayName(d.LDHName, d.UnicodeName))
	if d.Handle != "" {
		fmt.Fprintf(b, "  Handle:     %s\n", d.Handle)
	}
	if len(d.Status) > 0 {
		fmt.Fprintf(b, "  Status:     %s\n", strings.Join(d.Status, ", "))
	}
	for _, label := range []struct{ action, name string }{
		{"registration", "Registered"},
		{"expiration", "Expires"},
		{"last changed", "Changed"},
	} {
		if date := eventDate(d.Events, label.action); date != "" {
			fmt.Fprintf(b, "  %-11s %s\n", label.name+":", date)
		}
	}
	if d.SecureDNS != nil && d.SecureDNS.DelegationSigned != nil {
		fmt.Fprintf(b, "  DNSSEC:     %s\n", signedLabel(*d.SecureDNS.DelegationSigned))
	}
	for i := range d.Nameservers {
		fmt.Fprintf(b, "  Nameserver: %s\n", displayName(d.Nameservers[i].LDHName, d.Nameservers[i].UnicodeName))
	}
	for i := range d.Entities {
		e := &d.Entities[i]
		if name := entityLabel(e); name != "" && len(e.Roles) > 0 {
			fmt.Fprintf(b, "  %s: %s\n", strings.Join(e.Roles, "/"), name)
		}
	}
}

func entity(b *strings.Builder, e *rdap.Entity, indent string) {
	fmt.Fprintf(b, "%sEntity: %s\n", indent, entityLabel(e))
	if len(e.Roles) > 0 {
		fmt.Fprintf(b, "%s  Roles: %s\n", indent, strings.Join(e.Roles, ", "))
	}
}

func nameserver(b *strings.Builder, ns *rdap.Nameserver, indent string) {
	fmt.Fprintf(b, "%sNameserver: %s\n", indent, displayName(ns.LDHName, ns.UnicodeName))
	if ns.IPAddresses != nil {
		for _, a := range ns.IPAddresses.V4 {
			fmt.Fprintf(b, "%s  Address: %s\n", indent, a)
		}
		for _, a := range ns.IPAddresses.V6 {
			fmt.Fprintf(b, "%s  Address: %s\n", indent, a)
		}
	}
}

func autnum(b *strings.Builder, a *rdap.Autnum) {
	if a.StartAutnum == a.EndAutnum || a.EndAutnum == 0 {
		fmt.Fprintf(b, "AS Number: AS%d\n", a.StartAutnum)
	} else {
		fmt.Fprintf(b, "AS Range: AS%d - AS%d\n", a.StartAutnum, a.EndAutnum)
	}
	if a.Name != "" {
		fmt.Fprintf(b, "  Name:    %s\n", a.Name)
	}
	if a.Country != "" {
		fmt.Fprintf(b, "  Country: %s\n", a.Country)
	}
	if a.Handle != "" {
		fmt.Fprintf(b, "  Handle:  %s\n", a.Handle)
	}
}

func network(b *strings.Builder, n *rdap.IPNetwork) {
	fmt.Fprintf(b, "IP Network: %s - %s\n", n.StartAddress, n.EndAddress)
	if n.Name != "" {
		fmt.Fprintf(b, "  Name:    %s\n", n.Name)
	}
	if n.Type != "" {
		fmt.Fprintf(b, "  Type:    %s\n", n.Type)
	}
	if n.Country != "" {
		fmt.Fprintf(b, "  Country: %s\n", n.Country)
	}
	if n.Handle != "" {
		fmt.Fprintf(b, "  Handle:  %s\n", n.Handle)
	}
}

func errorDoc(b *strings.Builder, e *rdap.ErrorResponse) {
	fmt.Fprintf(b, "Server error %d: %s\n", e.ErrorCode, e.Title)
	for _, d := range e.Description {
		fmt.Fprintf(b, "  %s\n", d)
	}
}

func help(b *strings.Builder, h *rdap.Help) {
	b.WriteString("Server help\n")
	for _, n := range h.Notices {
		if n.Title != "" {
			fmt.Fprintf(b, "  %s\n", n.Title)
		}
		for _, d := range n.Description {
			fmt.Fprintf(b, "    %s\n", d)
		}
	}
}

func displayName(ldh, unicode string) string {
	switch {
	case unicode != "" && unicode != ldh:
		return fmt.Sprintf("%s (%s)", ldh, unicode)
	case ldh != "":
		return ldh
	default:
		return unicode
	}
}

func eventDate(events []rdap.Event, action string) string {
	for _, e := range events {
		if e.Action == action {
			return e.Date
		}
	}
	return ""
}

func signedLabel(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}

// entityLabel prefers the jCard formatted name, falling back to the
// handle. vcardArray is ["vcard", [[name, params, type, value], ...]].
func entityLabel(e *rdap.Entity) string {
	if len(e.VCardArray) > 0 {
		if fn := gjson.GetBytes(e.VCardArray, `1.#(0="fn").3`); fn.Exists() && fn.String() != "" {
			return fn.String()
		}
	}
	return e.Handle
}
