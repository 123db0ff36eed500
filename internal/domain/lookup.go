package domain

// LookupState - lifecycle of a plan lookup as seen by the presentation layer
type LookupState string

const (
	LookupIdle     LookupState = "idle"
	LookupLoading  LookupState = "loading"
	LookupResolved LookupState = "resolved"
	LookupError    LookupState = "error"
)

// PlanLookup - resolved plan together with the query that produced it
type PlanLookup struct {
	Address   string      `json:"address"`
	Point     GeoPoint    `json:"coordinates"`
	State     LookupState `json:"state"`
	RegionKey string      `json:"region_key,omitempty"`
	Plan      ZonePlan    `json:"plan"`
}
