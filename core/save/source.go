package save

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultSource labels captures whose URL has no usable host
const DefaultSource = "web"

// SourceFor derives a platform label from the registrable domain of rawURL,
// e.g. "https://www.linkedin.com/posts/x" gives "linkedin"
func SourceFor(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return DefaultSource
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return DefaultSource
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	suffix, _ := publicsuffix.PublicSuffix(registrable)
	return strings.TrimSuffix(registrable, "."+suffix)
}
