package eazyhealth

import (
	"net/url"
	"strings"
)

// DefaultTrustedDomains is the allow-list used when none is configured.
var DefaultTrustedDomains = []string{
	"cdc.gov",
	"nih.gov",
	"who.int",
	"mayoclinic.org",
	"hopkinsmedicine.org",
	"health.harvard.edu",
	"webmd.com",
	"medlineplus.gov",
}

// TrustFilter classifies URLs against an allow-list of domains.
// A host is trusted when it equals a listed domain or is a subdomain of one.
type TrustFilter struct {
	domains []string
}

// NewTrustFilter returns a TrustFilter over the given domains.
// Domains are lowercased and blank entries are dropped.
func NewTrustFilter(domains []string) *TrustFilter {
	f := &TrustFilter{}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		f.domains = append(f.domains, d)
	}
	return f
}

// ParseTrustedDomains splits a comma-separated domain list.
func ParseTrustedDomains(s string) []string {
	var domains []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

// Domains returns a copy of the allow-list.
func (f *TrustFilter) Domains() []string {
	return append([]string(nil), f.domains...)
}

// IsTrusted reports whether rawURL points at a trusted domain.
// Malformed URLs are never trusted.
func (f *TrustFilter) IsTrusted(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	host = strings.TrimPrefix(host, "www.")

	for _, d := range f.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// SiteQuery appends a site restriction for the allow-list to query.
// sep joins the domains inside the parenthesised group, so search backends
// with different operator grammars can share the same list, e.g.
// " OR site:" yields "q site:(a.gov OR site:b.gov)".
func (f *TrustFilter) SiteQuery(query, sep string) string {
	if len(f.domains) == 0 {
		return query
	}
	return query + " site:(" + strings.Join(f.domains, sep) + ")"
}
