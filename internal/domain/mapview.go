package domain

// MapConfig - initial map view for the plan viewer
type MapConfig struct {
	Center    GeoPoint       `json:"center"`
	Zoom      int            `json:"zoom"`
	MinZoom   int            `json:"min_zoom"`
	MaxZoom   int            `json:"max_zoom"`
	MaxBounds BoundingBox    `json:"max_bounds"`
	Overlays  []OverlayLayer `json:"overlays"`
}

// OverlayLayer - WMS overlay definition; tiles are fetched by the client
type OverlayLayer struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Layers      []string `json:"layers"`
	Format      string   `json:"format"`
	Transparent bool     `json:"transparent"`
	Attribution string   `json:"attribution"`
	Opacity     float64  `json:"opacity"`
	Checked     bool     `json:"checked"`
}
