package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	geo "github.com/kellydunn/golang-geo"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
	"github.com/ternarybob/apteka/internal/services/formatter"
)

// Service runs the resolve -> search -> format pipeline
type Service struct {
	geocoder interfaces.GeocodingService
	places   interfaces.PlacesService
	config   *common.SearchConfig
	logger   arbor.ILogger
}

// Compile-time assertion
var _ interfaces.FinderService = (*Service)(nil)

// NewService creates a new finder service
func NewService(geocoder interfaces.GeocodingService, places interfaces.PlacesService, config *common.SearchConfig, logger arbor.ILogger) *Service {
	return &Service{
		geocoder: geocoder,
		places:   places,
		config:   config,
		logger:   logger,
	}
}

// Search resolves address and lists the pharmacies within DefaultSearchRadius of it.
// The places service is not called when the address does not resolve.
func (s *Service) Search(ctx context.Context, address string) (*models.SearchResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, models.ErrInvalidAddress
	}

	searchID := common.NewSearchID()
	return s.search(ctx, searchID, address)
}

func (s *Service) search(ctx context.Context, searchID, address string) (*models.SearchResult, error) {
	logger := s.logger.WithCorrelationId(searchID)

	if s.config != nil && s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logger.Info().Str("address", address).Msg("Searching pharmacies")

	location, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	records, err := s.places.Search(ctx, *location, models.DefaultSearchRadius, models.CategoryPharmacy)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	if len(records) == 0 {
		logger.Info().
			Float64("latitude", location.Latitude).
			Float64("longitude", location.Longitude).
			Msg("No pharmacies around address")
		return nil, models.ErrNoPharmacies
	}

	origin := geo.NewPoint(location.Latitude, location.Longitude)
	listings := make([]models.PlaceListing, 0, len(records))
	for _, record := range records {
		listings = append(listings, models.PlaceListing{
			PlaceDetails:   formatter.Format(record),
			ID:             record.ID,
			Latitude:       record.Latitude,
			Longitude:      record.Longitude,
			DistanceMeters: origin.GreatCircleDistance(geo.NewPoint(record.Latitude, record.Longitude)) * 1000,
		})
	}

	logger.Info().
		Int("places", len(listings)).
		Msg("Pharmacy search completed")

	return &models.SearchResult{
		SearchID: searchID,
		Address:  address,
		Location: *location,
		Radius:   models.DefaultSearchRadius,
		Category: models.CategoryPharmacy,
		Places:   listings,
	}, nil
}

// Respond runs a search and converts its outcome into a SearchResponse.
// It never returns nil.
func (s *Service) Respond(ctx context.Context, address string) *models.SearchResponse {
	address = strings.TrimSpace(address)
	if address == "" {
		return NewResponse("", address, nil, models.ErrInvalidAddress)
	}

	searchID := common.NewSearchID()
	result, err := s.search(ctx, searchID, address)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrAddressNotFound), errors.Is(err, models.ErrNoPharmacies):
		s.logger.Info().
			Str("search_id", searchID).
			Str("address", address).
			Err(err).
			Msg("Pharmacy search found nothing")
	default:
		s.logger.Warn().
			Str("search_id", searchID).
			Str("address", address).
			Err(err).
			Msg("Pharmacy search failed")
	}
	return NewResponse(searchID, address, result, err)
}

// NewResponse builds the response for a search outcome
func NewResponse(searchID, address string, result *models.SearchResult, err error) *models.SearchResponse {
	resp := &models.SearchResponse{
		SearchID: searchID,
		Address:  address,
		Places:   []models.PlaceListing{},
	}

	if err == nil && result != nil {
		location := result.Location
		resp.Status = models.SearchStatusOK
		resp.Location = &location
		resp.Places = result.Places
		return resp
	}

	resp.Status, resp.Message = Classify(err)
	return resp
}

// Classify maps a search error to its status and user-visible message
func Classify(err error) (models.SearchStatus, string) {
	switch {
	case err == nil:
		return models.SearchStatusOK, ""
	case errors.Is(err, models.ErrInvalidAddress):
		return models.SearchStatusInvalidAddress, models.MessageInvalidAddress
	case errors.Is(err, models.ErrAddressNotFound):
		return models.SearchStatusLocationNotFound, models.MessageLocationNotFound
	case errors.Is(err, models.ErrNoPharmacies):
		return models.SearchStatusNoPharmacies, models.MessageNoPharmacies
	case errors.Is(err, models.ErrProviderUnavailable):
		return models.SearchStatusGeocoderUnavailable, models.MessageGeocoderUnavailable
	default:
		// ErrServiceUnavailable, ErrInvalidSearch and anything unexpected
		return models.SearchStatusSearchUnavailable, models.MessageSearchUnavailable
	}
}
