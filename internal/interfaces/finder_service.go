package interfaces

import (
	"context"

	"github.com/ternarybob/apteka/internal/models"
)

// FinderService runs the address -> pharmacies pipeline for presentation surfaces
type FinderService interface {
	// Search resolves address and lists pharmacies around it
	Search(ctx context.Context, address string) (*models.SearchResult, error)

	// Respond runs Search and converts every outcome into a renderable response
	Respond(ctx context.Context, address string) *models.SearchResponse
}
