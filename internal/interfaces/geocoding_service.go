package interfaces

import (
	"context"

	"github.com/ternarybob/apteka/internal/models"
)

// GeocodingService converts free-text addresses to coordinates
type GeocodingService interface {
	// Resolve returns the coordinate of the best match for address.
	// Returns models.ErrAddressNotFound when there is no match and an error
	// matching models.ErrProviderUnavailable when the provider could not answer.
	Resolve(ctx context.Context, address string) (*models.Coordinate, error)
}
