package domain

// Site represents a supported e-commerce platform. Sites are reference
// data: seeded once and read-only at runtime.
type Site struct {
	Name       string `db:"name" json:"name"`
	BaseURL    string `db:"base_url" json:"base_url"`
	SearchPath string `db:"search_path" json:"search_path"`
	Active     bool   `db:"active" json:"active"`
}
