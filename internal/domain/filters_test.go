package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersCanonicalStringOrderInsensitive(t *testing.T) {
	minPrice := 500.0

	a := Filters{
		Sizes:     []string{"M", "L"},
		Materials: []string{"silk", "cotton"},
		MinPrice:  &minPrice,
	}
	b := Filters{
		Sizes:     []string{"L", "M"},
		Materials: []string{"cotton", "silk"},
		MinPrice:  &minPrice,
	}

	assert.Equal(t, a.CanonicalString(), b.CanonicalString())

	c := Filters{Sizes: []string{"XL"}}
	assert.NotEqual(t, a.CanonicalString(), c.CanonicalString())
}

func TestFiltersIsZero(t *testing.T) {
	assert.True(t, Filters{}.IsZero())

	rating := 4.0
	assert.False(t, Filters{MinRating: &rating}.IsZero())
	assert.False(t, Filters{Sizes: []string{"M"}}.IsZero())
}

func TestFiltersScanValueRoundTrip(t *testing.T) {
	maxPrice := 2000.0
	original := Filters{
		Sizes:    []string{"M"},
		MaxPrice: &maxPrice,
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned Filters
	require.NoError(t, scanned.Scan(value))

	assert.Equal(t, original.Sizes, scanned.Sizes)
	require.NotNil(t, scanned.MaxPrice)
	assert.InDelta(t, maxPrice, *scanned.MaxPrice, 0.001)
}

func TestFiltersScanNil(t *testing.T) {
	var f Filters
	require.NoError(t, f.Scan(nil))
	assert.True(t, f.IsZero())
}
