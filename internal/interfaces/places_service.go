package interfaces

import (
	"context"

	"github.com/ternarybob/apteka/internal/models"
)

// PlacesService defines the interface for map-feature (points of interest) queries
type PlacesService interface {
	// Search returns every node tagged with the amenity category within radius meters of center.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout control
	//   - center: Coordinate the radius is measured from
	//   - radius: Search radius in meters, must be > 0
	//   - category: Amenity tag value, e.g. "pharmacy"
	//
	// Returns:
	//   - []models.RawPlaceRecord: Matching records, empty when nothing matched
	//   - error: models.ErrInvalidSearch for rejected parameters, an error matching
	//     models.ErrServiceUnavailable when the request or its payload failed
	Search(ctx context.Context, center models.Coordinate, radius int, category string) ([]models.RawPlaceRecord, error)
}
