package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/httpclient"
	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
)

const serviceName = "overpass"

// Service implements the PlacesService interface against an Overpass API instance
type Service struct {
	config     *common.OverpassConfig
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
}

// Compile-time assertion
var _ interfaces.PlacesService = (*Service)(nil)

// NewService creates a new Places service instance
func NewService(config *common.OverpassConfig, logger arbor.ILogger) *Service {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Every(config.RateLimit), 1)
	}

	return &Service{
		config:     config,
		logger:     logger,
		httpClient: httpclient.NewUpstreamClient(config.RequestTimeout, config.UserAgent),
		limiter:    limiter,
		validate:   newValidator(),
	}
}

// Search queries Overpass for nodes tagged amenity=category within radius meters of center
func (s *Service) Search(ctx context.Context, center models.Coordinate, radius int, category string) ([]models.RawPlaceRecord, error) {
	req := SearchRequest{
		Center:   center,
		Radius:   radius,
		Category: category,
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidSearch, err)
	}

	query := BuildQuery(req, s.config.QueryTimeout)

	s.logger.Info().
		Float64("latitude", center.Latitude).
		Float64("longitude", center.Longitude).
		Int("radius", radius).
		Str("category", category).
		Msg("Starting place search")

	apiResp, err := s.interpret(ctx, query)
	if err != nil {
		return nil, err
	}

	records := make([]models.RawPlaceRecord, 0, len(*apiResp.Elements))
	for _, element := range *apiResp.Elements {
		records = append(records, convertToRecord(element))
	}

	// Log sample place names for debugging search relevance
	samplePlaces := []string{}
	for i, record := range records {
		if i < 3 {
			samplePlaces = append(samplePlaces, record.Tag("name"))
		}
	}

	s.logger.Info().
		Int("results_count", len(records)).
		Strs("sample_places", samplePlaces).
		Msg("Place search completed")

	return records, nil
}

// interpret posts the query to the Overpass interpreter and validates the payload
func (s *Service) interpret(ctx context.Context, query string) (*OverpassResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, s.upstreamError(0, "rate limiter wait aborted", err)
	}

	form := url.Values{}
	form.Set("data", query)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, s.upstreamError(0, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	s.logger.Debug().
		Str("url", s.config.BaseURL).
		Str("query", query).
		Msg("Calling Overpass interpreter")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, s.upstreamError(0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nil, s.upstreamError(resp.StatusCode, message, nil)
	}

	var apiResp OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, s.upstreamError(resp.StatusCode, "failed to decode response", err)
	}

	if apiResp.Elements == nil {
		return nil, s.upstreamError(resp.StatusCode, "response has no elements", nil)
	}

	// Overpass reports query runtime failures (timeouts, memory) as a remark on a 200 response
	if strings.Contains(strings.ToLower(apiResp.Remark), "error") {
		return nil, s.upstreamError(resp.StatusCode, apiResp.Remark, nil)
	}

	return &apiResp, nil
}

// convertToRecord converts an Overpass element to a RawPlaceRecord model
func convertToRecord(element Element) models.RawPlaceRecord {
	record := models.RawPlaceRecord{
		ID:        element.ID,
		Type:      element.Type,
		Latitude:  element.Lat,
		Longitude: element.Lon,
		Tags:      element.Tags,
	}

	if element.Center != nil {
		record.Latitude = element.Center.Lat
		record.Longitude = element.Center.Lon
	}

	if record.Tags == nil {
		record.Tags = map[string]string{}
	}

	return record
}

func (s *Service) upstreamError(statusCode int, message string, err error) error {
	upstreamErr := &models.UpstreamError{
		Kind:       models.ErrServiceUnavailable,
		Service:    serviceName,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}

	s.logger.Warn().
		Err(upstreamErr).
		Int("status", statusCode).
		Msg("Overpass request failed")

	return upstreamErr
}
