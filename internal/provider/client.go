package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// fetch issues one provider call and decodes the response envelope.
func (s *Service) fetch(ctx context.Context, query string, filters domain.Filters) (*response, error) {
	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("location", s.cfg.Location)
	params.Set("hl", s.cfg.Language)
	params.Set("gl", s.cfg.Country)
	params.Set("api_key", s.cfg.APIKey)
	params.Set("num", strconv.Itoa(s.cfg.PerSiteNum))
	params.Set("tbm", "shop")

	// The provider also applies price bounds server-side; the adapter
	// still post-filters because provider enforcement is loose.
	if filters.MinPrice != nil {
		params.Set("min_price", strconv.FormatFloat(*filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*filters.MaxPrice, 'f', -1, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var decoded response
	if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", decodeErr)
	}

	if decoded.Error != "" {
		return nil, fmt.Errorf("provider error: %s", decoded.Error)
	}

	return &decoded, nil
}
