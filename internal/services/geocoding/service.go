// Package geocoding resolves free-text addresses to coordinates using Nominatim.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/httpclient"
	"github.com/ternarybob/apteka/internal/interfaces"
	"github.com/ternarybob/apteka/internal/models"
)

const serviceName = "nominatim"

// Service implements the GeocodingService interface against a Nominatim instance
type Service struct {
	config     *common.GeocoderConfig
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Compile-time assertion
var _ interfaces.GeocodingService = (*Service)(nil)

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

// NewService creates a new geocoding service instance
func NewService(config *common.GeocoderConfig, logger arbor.ILogger, opts ...ServiceOption) *Service {
	s := &Service{
		config:     config,
		logger:     logger,
		httpClient: httpclient.NewUpstreamClient(config.RequestTimeout, config.UserAgent),
		limiter:    newLimiter(config),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func newLimiter(config *common.GeocoderConfig) *rate.Limiter {
	if config.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(config.RateLimit), 1)
}

// Resolve returns the coordinate of the first Nominatim match for address
func (s *Service) Resolve(ctx context.Context, address string) (*models.Coordinate, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, models.ErrInvalidAddress
	}

	results, err := s.search(ctx, address)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		s.logger.Info().
			Str("address", address).
			Msg("Address did not resolve")
		return nil, models.ErrAddressNotFound
	}

	best := results[0]
	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return nil, s.upstreamError(0, "invalid latitude in response", err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return nil, s.upstreamError(0, "invalid longitude in response", err)
	}

	s.logger.Info().
		Str("address", address).
		Str("display_name", best.DisplayName).
		Float64("latitude", lat).
		Float64("longitude", lon).
		Msg("Address resolved")

	return &models.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// search calls the Nominatim /search endpoint and returns the decoded matches
func (s *Service) search(ctx context.Context, address string) ([]SearchResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, s.upstreamError(0, "rate limiter wait aborted", err)
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	if s.config.Language != "" {
		params.Set("accept-language", s.config.Language)
	}
	if s.config.CountryCodes != "" {
		params.Set("countrycodes", s.config.CountryCodes)
	}
	if s.config.Email != "" {
		params.Set("email", s.config.Email)
	}

	reqURL := fmt.Sprintf("%s/search?%s", strings.TrimRight(s.config.BaseURL, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, s.upstreamError(0, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	s.logger.Debug().
		Str("url", reqURL).
		Msg("Calling Nominatim search API")

	resp, err := s.httpClient.Do(req)
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

	var results []SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, s.upstreamError(resp.StatusCode, "failed to decode response", err)
	}

	return results, nil
}

func (s *Service) upstreamError(statusCode int, message string, err error) error {
	upstreamErr := &models.UpstreamError{
		Kind:       models.ErrProviderUnavailable,
		Service:    serviceName,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}

	s.logger.Warn().
		Err(upstreamErr).
		Int("status", statusCode).
		Msg("Nominatim request failed")

	return upstreamErr
}
