package models

const (
	// DefaultSearchRadius is the radius in meters searched around a resolved address
	DefaultSearchRadius = 2000

	// CategoryPharmacy is the OSM amenity tag searched for
	CategoryPharmacy = "pharmacy"
)

// Placeholders shown when a place does not carry the tag
const (
	PlaceholderName = "Brak nazwy"
	PlaceholderInfo = "Brak informacji"
)

// Coordinate represents a geographic coordinate in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RawPlaceRecord represents a single map feature as returned by the map-data service
type RawPlaceRecord struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Tags      map[string]string `json:"tags,omitempty"`
}

// Tag returns the tag value, or "" when the record does not carry it
func (r RawPlaceRecord) Tag(key string) string {
	if r.Tags == nil {
		return ""
	}
	return r.Tags[key]
}

// PlaceDetails is the display projection of a RawPlaceRecord.
// Every field is always populated, either from tags or from a placeholder.
type PlaceDetails struct {
	Name         string `json:"name"`
	OpeningHours string `json:"opening_hours"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
}

// PlaceListing is a formatted place together with where it is
type PlaceListing struct {
	PlaceDetails
	ID             int64   `json:"id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DistanceMeters float64 `json:"distance_meters"`
}

// SearchResult is the outcome of a successful address-to-pharmacies search
type SearchResult struct {
	SearchID string         `json:"search_id"`
	Address  string         `json:"address"`
	Location Coordinate     `json:"location"`
	Radius   int            `json:"radius"`
	Category string         `json:"category"`
	Places   []PlaceListing `json:"places"`
}

// SearchStatus identifies how a search ended, as seen by a presentation layer
type SearchStatus string

const (
	SearchStatusOK                  SearchStatus = "ok"
	SearchStatusInvalidAddress      SearchStatus = "invalid_address"
	SearchStatusLocationNotFound    SearchStatus = "location_not_found"
	SearchStatusNoPharmacies        SearchStatus = "no_pharmacies"
	SearchStatusGeocoderUnavailable SearchStatus = "geocoder_unavailable"
	SearchStatusSearchUnavailable   SearchStatus = "search_unavailable"
	SearchStatusSuperseded          SearchStatus = "superseded"
)

// User-visible messages for each non-ok outcome
const (
	MessageInvalidAddress      = "Wpisz adres, aby wyszukać apteki."
	MessageLocationNotFound    = "Nie można uzyskać lokalizacji."
	MessageNoPharmacies        = "Nie znaleziono aptek."
	MessageGeocoderUnavailable = "Usługa lokalizacji jest chwilowo niedostępna."
	MessageSearchUnavailable   = "Wyszukiwarka aptek jest chwilowo niedostępna."
	MessageSuperseded          = "Wyszukiwanie zastąpione nowszym zapytaniem."
)

// SearchResponse is what presentation surfaces render: either a list of places or a message
type SearchResponse struct {
	SearchID string         `json:"search_id"`
	Address  string         `json:"address"`
	Status   SearchStatus   `json:"status"`
	Message  string         `json:"message,omitempty"`
	Location *Coordinate    `json:"location,omitempty"`
	Places   []PlaceListing `json:"places"`
}

// OK reports whether the response carries places
func (r *SearchResponse) OK() bool {
	return r != nil && r.Status == SearchStatusOK
}
