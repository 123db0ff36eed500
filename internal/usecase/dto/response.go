package dto

import "github.com/planinfo-service/internal/domain"

// BatchPlanLookupResult - one entry per requested point, same order as the request
type BatchPlanLookupResult struct {
	Index  int                `json:"index"`
	Lookup *domain.PlanLookup `json:"lookup,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// BatchPlanLookupMeta - summary of a batch
type BatchPlanLookupMeta struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Failed   int `json:"failed"`
	Rejected int `json:"rejected"`
}

// BatchPlanLookupResponse - batch lookup response
type BatchPlanLookupResponse struct {
	Results []BatchPlanLookupResult `json:"results"`
	Meta    BatchPlanLookupMeta     `json:"meta"`
}

// AddressSearchResponse - lookup for the best hit plus the other candidates
type AddressSearchResponse struct {
	Lookup     domain.PlanLookup      `json:"lookup"`
	Candidates []domain.GeocodeResult `json:"candidates"`
}

// RegionsResponse - configured zoning table
type RegionsResponse struct {
	Regions            []domain.ZoneRegion `json:"regions"`
	DefaultPlan        domain.ZonePlan     `json:"default_plan"`
	MunicipalityExtent domain.BoundingBox  `json:"municipality_extent"`
}
