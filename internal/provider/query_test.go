package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		filters domain.Filters
		site    string
		want    string
	}{
		{
			name:   "prompt only",
			prompt: "red dress",
			want:   "red dress",
		},
		{
			name:   "with site hint",
			prompt: "red dress",
			site:   "meesho",
			want:   "red dress meesho",
		},
		{
			name:    "with sizes",
			prompt:  "red dress",
			site:    "meesho",
			filters: domain.Filters{Sizes: []string{"M", "L"}},
			want:    "red dress meesho size M size L",
		},
		{
			name:    "with materials",
			prompt:  "kurta",
			site:    "fabindia",
			filters: domain.Filters{Materials: []string{"cotton", "silk"}},
			want:    `kurta fabindia ("cotton" OR "silk")`,
		},
		{
			name:   "everything",
			prompt: "kurta",
			site:   "fabindia",
			filters: domain.Filters{
				Sizes:     []string{"XL"},
				Materials: []string{"linen"},
			},
			want: `kurta fabindia size XL ("linen")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.prompt, tt.filters, tt.site)
			assert.Equal(t, tt.want, got)
		})
	}
}
