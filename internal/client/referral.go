package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/jroosing/gordap/internal/rdap"
)

// follow looks for a registrar referral on a domain result and, when
// one points at a different host, fetches it and attaches the record.
// Referral failures are logged and swallowed: the registry result is
// already a success and stays one.
func (c *Client) follow(ctx context.Context, res *Result) {
	dom, ok := res.Registry.(*rdap.Domain)
	if !ok {
		return
	}
	link := referralLink(dom)
	if link == nil {
		return
	}

	u, err := url.Parse(link.Href)
	if err != nil || u.Host == "" {
		c.logger.Debug("ignoring unparsable referral href", "href", link.Href)
		return
	}
	if strings.EqualFold(u.Host, res.RegistryURL.Host) {
		// Self-referential link; nothing new to learn.
		return
	}

	c.logger.Debug("following registrar referral", "url", u.String())
	rec, err := c.do(ctx, u)
	if err != nil {
		c.logger.Warn("referral fetch failed, keeping registry result", "url", u.String(), "error", err)
		return
	}
	res.Registrar = rec
	res.RegistrarURL = u
}

// referralLink picks the referral target: first a matching link on the
// domain itself, then one on a registrar-role entity.
func referralLink(dom *rdap.Domain) *rdap.Link {
	if l := matchReferral(dom.Links); l != nil {
		return l
	}
	for i := range dom.Entities {
		e := &dom.Entities[i]
		if !e.HasRole("registrar") {
			continue
		}
		if l := matchReferral(e.Links); l != nil {
			return l
		}
	}
	return nil
}

// matchReferral returns the first "related" link that is either typed
// with a JSON media type or points at a domain record path. Some
// registries advertise plain "application/json" instead of the rdap
// media type, so both spellings count.
func matchReferral(links []rdap.Link) *rdap.Link {
	for i := range links {
		l := &links[i]
		if l.Href == "" || !strings.EqualFold(l.Rel, "related") {
			continue
		}
		typ := strings.ToLower(l.Type)
		if strings.Contains(typ, "rdap") || strings.Contains(typ, "json") || strings.Contains(l.Href, "/domain/") {
			return l
		}
	}
	return nil
}
