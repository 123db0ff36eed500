package domain

// PlanType - planning instrument that produced a plan
type PlanType string

const (
	PlanTypeRegulation       PlanType = "Reguleringsplan"
	PlanTypeMunicipalSection PlanType = "Kommunedelplan"
	PlanTypeUnknown          PlanType = "Ukjent"
)

// PlanDocument - link to a plan document (regulations, map, report)
type PlanDocument struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ZonePlan - regulatory plan applicable to a location
type ZonePlan struct {
	Name             string         `json:"plan_name"`
	Type             PlanType       `json:"plan_type"`
	Status           string         `json:"plan_status"`
	AdoptionDate     string         `json:"adoption_date"`
	PlanID           *string        `json:"plan_id"`
	Municipality     string         `json:"municipality"`
	Description      string         `json:"description"`
	LandUsePurposes  []string       `json:"land_use_purposes"`
	UtilizationRatio string         `json:"utilization_ratio"`
	HeightLimit      string         `json:"height_restriction"`
	Documents        []PlanDocument `json:"documents"`
	SourceCategory   string         `json:"source_category"`
	Error            bool           `json:"error,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the static table.
func (p ZonePlan) Clone() ZonePlan {
	cp := p
	if p.PlanID != nil {
		id := *p.PlanID
		cp.PlanID = &id
	}
	if p.LandUsePurposes != nil {
		cp.LandUsePurposes = append([]string(nil), p.LandUsePurposes...)
	}
	cp.Documents = append([]PlanDocument{}, p.Documents...)
	return cp
}

// ZoneRegion - rectangular area bound to one plan
type ZoneRegion struct {
	Key    string      `json:"key"`
	Bounds BoundingBox `json:"bounds"`
	Plan   ZonePlan    `json:"plan"`
}
