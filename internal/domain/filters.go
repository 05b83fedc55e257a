package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Filters holds the validated, normalized search filters for a job.
// Each field is optional; a zero value means the filter is not applied.
type Filters struct {
	Sizes     []string `json:"size,omitempty"`
	Materials []string `json:"material,omitempty"`
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
}

// IsZero returns true if no filter is set.
func (f Filters) IsZero() bool {
	return len(f.Sizes) == 0 && len(f.Materials) == 0 &&
		f.MinPrice == nil && f.MaxPrice == nil && f.MinRating == nil
}

// CanonicalString renders the filters in a stable, order-insensitive form.
// Used for cache key derivation.
func (f Filters) CanonicalString() string {
	var parts []string

	if len(f.Sizes) > 0 {
		sizes := append([]string(nil), f.Sizes...)
		sort.Strings(sizes)
		parts = append(parts, "size="+strings.Join(sizes, ","))
	}
	if len(f.Materials) > 0 {
		materials := append([]string(nil), f.Materials...)
		sort.Strings(materials)
		parts = append(parts, "material="+strings.Join(materials, ","))
	}
	if f.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min_price=%g", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max_price=%g", *f.MaxPrice))
	}
	if f.MinRating != nil {
		parts = append(parts, fmt.Sprintf("min_rating=%g", *f.MinRating))
	}

	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// Scan implements the sql.Scanner interface for JSONB columns.
func (f *Filters) Scan(value any) error {
	if value == nil {
		*f = Filters{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return errors.New("unsupported type for Filters")
	}

	if len(data) == 0 {
		*f = Filters{}
		return nil
	}

	return json.Unmarshal(data, f)
}

// Value implements the driver.Valuer interface.
func (f Filters) Value() (driver.Value, error) {
	return json.Marshal(f)
}
