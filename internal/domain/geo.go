package domain

// GeoPoint - WGS84 point in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox - axis-aligned lat/lng rectangle
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether p lies inside the box. All four edges are inclusive.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// MunicipalityExtent - outer bound within which lookups are accepted
var MunicipalityExtent = BoundingBox{
	MinLat: 57.9,
	MaxLat: 58.5,
	MinLng: 7.3,
	MaxLng: 8.7,
}

const MunicipalityName = "Kristiansand"
