package domain

// GeocodeResult - address search hit
type GeocodeResult struct {
	PlaceName string   `json:"place_name"`
	Point     GeoPoint `json:"coordinates"`
	Relevance float64  `json:"relevance"`
}
