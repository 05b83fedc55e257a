package provider

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// BuildQuery builds the provider query string for one site: the base
// prompt, the site name as a free-text relevance hint (the provider is a
// full-text search, so this nudges rather than restricts), a "size {s}"
// token per requested size, and an OR-group of quoted material terms.
func BuildQuery(prompt string, filters domain.Filters, site string) string {
	parts := []string{prompt}

	if site != "" {
		parts = append(parts, site)
	}

	for _, size := range filters.Sizes {
		parts = append(parts, "size "+size)
	}

	if len(filters.Materials) > 0 {
		quoted := make([]string, 0, len(filters.Materials))
		for _, material := range filters.Materials {
			quoted = append(quoted, fmt.Sprintf("%q", material))
		}
		parts = append(parts, "("+strings.Join(quoted, " OR ")+")")
	}

	return strings.Join(parts, " ")
}
