package provider

import (
	"net/url"
	"strings"
)

// knownPlatforms maps a domain fragment to its canonical site token.
var knownPlatforms = []string{"meesho", "nykaa", "myntra", "fabindia"}

// SiteFromURL derives a site name from a result URL's domain, stripping a
// www. prefix. Known platform names are normalized to their lowercase
// canonical tokens.
func SiteFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}

	domain := strings.ToLower(parsed.Hostname())

	for _, platform := range knownPlatforms {
		if strings.Contains(domain, platform) {
			return platform
		}
	}

	return strings.TrimPrefix(domain, "www.")
}
