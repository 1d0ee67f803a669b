package places

// OverpassResponse represents an Overpass API response with [out:json]
type OverpassResponse struct {
	Version   float64    `json:"version"`
	Generator string     `json:"generator,omitempty"`
	OSM3S     *OSM3S     `json:"osm3s,omitempty"`
	Elements  *[]Element `json:"elements"` // Pointer so a payload without the array can be told apart from an empty one
	Remark    string     `json:"remark,omitempty"`
}

// OSM3S carries data freshness information
type OSM3S struct {
	TimestampOSMBase string `json:"timestamp_osm_base,omitempty"`
	Copyright        string `json:"copyright,omitempty"`
}

// Element represents a single OSM element from an Overpass response
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat,omitempty"`
	Lon    float64           `json:"lon,omitempty"`
	Center *LatLon           `json:"center,omitempty"` // Present for ways/relations with "out center"
	Tags   map[string]string `json:"tags,omitempty"`
}

// LatLon represents a geographic coordinate
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
