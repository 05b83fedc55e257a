package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"known platform", "https://www.meesho.com/product/123", "meesho"},
		{"known platform subdomain", "https://shop.nykaa.com/item", "nykaa"},
		{"unknown domain strips www", "https://www.example.com/item", "example.com"},
		{"unknown domain kept", "https://shop.example.in/item", "shop.example.in"},
		{"empty url", "", "unknown"},
		{"relative url has no host", "not-a-url", "unknown"},
		{"malformed url", "ht tp://broken", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SiteFromURL(tt.url))
		})
	}
}
