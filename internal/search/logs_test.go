package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

func TestSynthesizeLogs(t *testing.T) {
	job := &domain.Search{
		Sites: []string{"meesho", "nykaa"},
	}

	t.Run("pending", func(t *testing.T) {
		job.Status = domain.StatusPending
		logs := synthesizeLogs(job, nil)
		assert.Equal(t, []string{"Search job created and queued for processing"}, logs)
	})

	t.Run("running lists each site", func(t *testing.T) {
		job.Status = domain.StatusRunning
		logs := synthesizeLogs(job, nil)
		assert.Equal(t, []string{
			"Search in progress using Google Shopping",
			"Searching meesho...",
			"Searching nykaa...",
		}, logs)
	})

	t.Run("completed counts per site in first-seen order", func(t *testing.T) {
		job.Status = domain.StatusCompleted
		results := []domain.Product{
			{Site: "nykaa"},
			{Site: "meesho"},
			{Site: "nykaa"},
		}
		logs := synthesizeLogs(job, results)
		assert.Equal(t, []string{
			"Search completed successfully. Found 3 products",
			"Found 2 products on nykaa",
			"Found 1 products on meesho",
		}, logs)
	})

	t.Run("failed", func(t *testing.T) {
		job.Status = domain.StatusFailed
		logs := synthesizeLogs(job, nil)
		assert.Equal(t, []string{"Search failed. Please try again."}, logs)
	})
}
