package domain

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RegistrableDomain returns the eTLD+1 of a URL or bare host, lower-cased.
// Returns an empty string if nothing sensible can be extracted.
func RegistrableDomain(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}

	host := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		host = u.Hostname()
	} else if i := strings.IndexAny(host, "/:?#"); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return ""
	}

	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// hosts like "localhost" or a bare public suffix have no registrable part
		return host
	}
	return d
}
