package domain

// Product represents an individual item found for a search job.
// Products are created in bulk after a provider call and never mutated.
type Product struct {
	ID           int64    `db:"id" json:"-"`
	SearchID     string   `db:"search_id" json:"-"`
	Title        string   `db:"title" json:"title"`
	Price        float64  `db:"price" json:"price"`
	Size         string   `db:"size" json:"size"`
	Material     string   `db:"material" json:"material"`
	ImageURL     string   `db:"image_url" json:"image_url"`
	ProductURL   string   `db:"product_url" json:"product_url"`
	Site         string   `db:"site" json:"site"`
	Confidence   float64  `db:"confidence" json:"confidence"`
	Rating       *float64 `db:"rating" json:"rating"`
	ReviewsCount *int     `db:"reviews_count" json:"reviews_count"`
}
