package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeFilters(t *testing.T) {
	req := FiltersRequest{
		Size:      StringOrList{"m", " l ", "XXXL"},
		Material:  StringOrList{"Cotton", "velvet", "SILK"},
		MinPrice:  floatPtr(500),
		MaxPrice:  floatPtr(2000),
		MinRating: floatPtr(4),
	}

	f := normalizeFilters(req)

	assert.Equal(t, []string{"M", "L"}, f.Sizes)
	assert.Equal(t, []string{"cotton", "silk"}, f.Materials)
	require.NotNil(t, f.MinPrice)
	assert.InDelta(t, 500.0, *f.MinPrice, 0.001)
	require.NotNil(t, f.MaxPrice)
	assert.InDelta(t, 2000.0, *f.MaxPrice, 0.001)
	require.NotNil(t, f.MinRating)
	assert.InDelta(t, 4.0, *f.MinRating, 0.001)
}

func TestNormalizeFiltersDropsInvalidValues(t *testing.T) {
	req := FiltersRequest{
		Size:      StringOrList{"gigantic"},
		Material:  StringOrList{"unobtanium"},
		MinPrice:  floatPtr(-10),
		MaxPrice:  floatPtr(-1),
		MinRating: floatPtr(7),
	}

	f := normalizeFilters(req)

	assert.Empty(t, f.Sizes)
	assert.Empty(t, f.Materials)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.MinRating)
	assert.True(t, f.IsZero())
}

func TestNormalizeFiltersEmptyRequest(t *testing.T) {
	f := normalizeFilters(FiltersRequest{})
	assert.True(t, f.IsZero())
}

func TestStringOrListUnmarshal(t *testing.T) {
	var req FiltersRequest
	require.NoError(t, json.Unmarshal([]byte(`{"size": "M", "material": ["cotton", "silk"]}`), &req))
	assert.Equal(t, StringOrList{"M"}, req.Size)
	assert.Equal(t, StringOrList{"cotton", "silk"}, req.Material)

	var bad FiltersRequest
	assert.Error(t, json.Unmarshal([]byte(`{"size": 42}`), &bad))
}
