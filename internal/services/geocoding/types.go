package geocoding

// SearchResult represents a single match from the Nominatim /search endpoint (format=jsonv2).
// Nominatim encodes coordinates as decimal strings.
type SearchResult struct {
	PlaceID     int64   `json:"place_id"`
	OSMType     string  `json:"osm_type,omitempty"`
	OSMID       int64   `json:"osm_id,omitempty"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category,omitempty"`
	Type        string  `json:"type,omitempty"`
	Importance  float64 `json:"importance,omitempty"`
}
