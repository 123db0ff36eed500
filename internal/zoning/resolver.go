// Package zoning resolves a geographic point to the zoning plan that applies to it.
//
// Regions are axis-aligned boxes evaluated in priority order: the first region whose
// bounds contain the point wins, and a point outside every region gets the default plan.
// Resolvers are immutable after construction and safe for concurrent use.
package zoning

import (
	"github.com/planinfo-service/internal/domain"
)

// Resolver maps a point to exactly one plan.
type Resolver interface {
	// Resolve returns the plan for p and the key of the matched region ("" for the default plan).
	Resolve(p domain.GeoPoint) (domain.ZonePlan, string)

	// Regions returns the configured regions in priority order.
	Regions() []domain.ZoneRegion

	// DefaultPlan returns the fallback plan.
	DefaultPlan() domain.ZonePlan
}

// TableResolver scans an ordered region table.
type TableResolver struct {
	regions     []domain.ZoneRegion
	defaultPlan domain.ZonePlan
}

// NewTableResolver copies regions so later changes to the slice do not leak in.
func NewTableResolver(regions []domain.ZoneRegion, defaultPlan domain.ZonePlan) *TableResolver {
	return &TableResolver{
		regions:     cloneRegions(regions),
		defaultPlan: defaultPlan.Clone(),
	}
}

// NewDefaultResolver - resolver over the Kristiansand table
func NewDefaultResolver() *TableResolver {
	return NewTableResolver(KristiansandRegions(), KristiansandDefaultPlan())
}

func (r *TableResolver) Resolve(p domain.GeoPoint) (domain.ZonePlan, string) {
	for i := range r.regions {
		if r.regions[i].Bounds.Contains(p) {
			return r.regions[i].Plan.Clone(), r.regions[i].Key
		}
	}
	return r.defaultPlan.Clone(), ""
}

func (r *TableResolver) Regions() []domain.ZoneRegion {
	return cloneRegions(r.regions)
}

func (r *TableResolver) DefaultPlan() domain.ZonePlan {
	return r.defaultPlan.Clone()
}

func cloneRegions(regions []domain.ZoneRegion) []domain.ZoneRegion {
	out := make([]domain.ZoneRegion, len(regions))
	for i, region := range regions {
		out[i] = domain.ZoneRegion{
			Key:    region.Key,
			Bounds: region.Bounds,
			Plan:   region.Plan.Clone(),
		}
	}
	return out
}

// ErrorPlan - placeholder returned when a plan could not be produced
func ErrorPlan() domain.ZonePlan {
	return domain.ZonePlan{
		Name:             "Feil ved lasting",
		Type:             domain.PlanTypeUnknown,
		Status:           "Kunne ikke laste data",
		AdoptionDate:     "N/A",
		PlanID:           nil,
		Municipality:     domain.MunicipalityName,
		Description:      "Teknisk feil ved henting av data.",
		LandUsePurposes:  []string{"Ikke tilgjengelig"},
		UtilizationRatio: "Ikke tilgjengelig",
		HeightLimit:      "Ikke tilgjengelig",
		Documents:        []domain.PlanDocument{},
		Error:            true,
	}
}
