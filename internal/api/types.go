package api

import (
	"encoding/json"
	"fmt"
)

// CreateSearchRequest is the body of POST /api/search.
type CreateSearchRequest struct {
	Prompt  string         `json:"prompt"`
	Sites   []string       `json:"sites"`
	Filters FiltersRequest `json:"filters"`
}

// FiltersRequest carries raw, unvalidated filter input. Size and
// material accept either a single string or a list of strings.
type FiltersRequest struct {
	Size      StringOrList `json:"size"`
	Material  StringOrList `json:"material"`
	MinPrice  *float64     `json:"min_price"`
	MaxPrice  *float64     `json:"max_price"`
	MinRating *float64     `json:"min_rating"`
}

// CreateSearchResponse is the body of a successful POST /api/search.
type CreateSearchResponse struct {
	JobID string `json:"job_id"`
}

// StringOrList unmarshals from either a JSON string or a JSON array of
// strings.
type StringOrList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*s = StringOrList(list)
	return nil
}
