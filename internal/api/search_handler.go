package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/shopsearch/internal/domain"
	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/search"
)

// SearchService is the orchestrator surface the handler depends on.
type SearchService interface {
	Create(ctx context.Context, prompt string, sites []string, filters domain.Filters) (string, error)
	Status(ctx context.Context, jobID string) (*search.StatusReport, error)
}

// SiteLister lists the currently active site names.
type SiteLister interface {
	ActiveNames(ctx context.Context) ([]string, error)
}

// SearchHandler handles search job HTTP requests.
type SearchHandler struct {
	service SearchService
	sites   SiteLister
	logger  logger.Interface
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service SearchService, sites SiteLister, log logger.Interface) *SearchHandler {
	return &SearchHandler{
		service: service,
		sites:   sites,
		logger:  log,
	}
}

// Create handles POST /api/search.
func (h *SearchHandler) Create(c *gin.Context) {
	var req CreateSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request payload",
		})
		return
	}

	sites := req.Sites
	if len(sites) == 0 {
		// No sites requested means search everywhere.
		active, err := h.sites.ActiveNames(c.Request.Context())
		if err != nil {
			h.logger.Error("failed to load active sites", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create search",
			})
			return
		}
		sites = active
	}

	filters := normalizeFilters(req.Filters)

	jobID, err := h.service.Create(c.Request.Context(), req.Prompt, sites, filters)
	if err != nil {
		var validationErr *search.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validationErr.Error(),
			})
			return
		}

		h.logger.Error("failed to create search job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create search",
		})
		return
	}

	c.JSON(http.StatusAccepted, CreateSearchResponse{JobID: jobID})
}

// GetStatus handles GET /api/search/:id.
func (h *SearchHandler) GetStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" || id == "undefined" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid search ID",
		})
		return
	}

	report, err := h.service.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, search.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Search not found",
			})
			return
		}

		h.logger.Error("failed to load search status", "search_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve search",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}
