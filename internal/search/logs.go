package search

import (
	"fmt"

	"github.com/jonesrussell/shopsearch/internal/domain"
)

// synthesizeLogs builds a human-readable narrative from the job's current
// status and results. It is derived state, not a stored audit log.
func synthesizeLogs(job *domain.Search, results []domain.Product) []string {
	var logs []string

	switch job.Status {
	case domain.StatusPending:
		logs = append(logs, "Search job created and queued for processing")

	case domain.StatusRunning:
		logs = append(logs, "Search in progress using Google Shopping")
		for _, site := range job.Sites {
			logs = append(logs, fmt.Sprintf("Searching %s...", site))
		}

	case domain.StatusCompleted:
		logs = append(logs, fmt.Sprintf("Search completed successfully. Found %d products", len(results)))

		// One line per distinct site, in first-seen order.
		counts := make(map[string]int)
		var order []string
		for _, result := range results {
			if counts[result.Site] == 0 {
				order = append(order, result.Site)
			}
			counts[result.Site]++
		}
		for _, site := range order {
			logs = append(logs, fmt.Sprintf("Found %d products on %s", counts[site], site))
		}

	case domain.StatusFailed:
		logs = append(logs, "Search failed. Please try again.")
	}

	return logs
}
