package zoning

import "github.com/planinfo-service/internal/domain"

// Source categories
const (
	SourceRegulationPlan       = "Reguleringsplan"
	SourceMunicipalSectionPlan = "Kommunedelplan"
)

const planStatusInForce = "Gjeldende"

// KristiansandRegions returns the region table. Order is priority: sentrum overlaps
// lund, vagsbygd and kvadraturen on shared edges and must stay first.
func KristiansandRegions() []domain.ZoneRegion {
	return []domain.ZoneRegion{
		{
			Key:    "sentrum",
			Bounds: domain.BoundingBox{MinLat: 58.145, MaxLat: 58.155, MinLng: 7.995, MaxLng: 8.005},
			Plan: regulationPlan(
				"Reguleringsplan for Kristiansand sentrum",
				"15.03.2021",
				"4204-20210001",
				"Reguleringsplan for sentrumsområde med fokus på fortetting og byliv.",
				[]string{"Sentrumsformål S-1", "Forretning/Kontor FK-1", "Torg/Park T-1"},
				"BYA 70%, TU 3.5",
				"6 etasjer/24 meter",
			),
		},
		{
			Key:    "lund",
			Bounds: domain.BoundingBox{MinLat: 58.150, MaxLat: 58.165, MinLng: 8.010, MaxLng: 8.025},
			Plan: regulationPlan(
				"Reguleringsplan for Lund boligfelt",
				"22.09.2020",
				"4204-20200045",
				"Reguleringsplan for boligbebyggelse i etablert boligområde.",
				[]string{"Boligbebyggelse B-1", "Boligbebyggelse B-2", "Offentlig/privat tjenesteyting O-1"},
				"BYA 25%, TU 0.6",
				"2 etasjer/8.5 meter",
			),
		},
		{
			Key:    "vagsbygd",
			Bounds: domain.BoundingBox{MinLat: 58.135, MaxLat: 58.150, MinLng: 8.000, MaxLng: 8.015},
			Plan: regulationPlan(
				"Reguleringsplan for Vågsbygd vest",
				"18.11.2019",
				"4204-20190028",
				"Reguleringsplan for blandet bolig- og næringsutvikling.",
				[]string{"Boligbebyggelse B-3", "Næring N-1", "Grøntareal G-1"},
				"BYA 35%, TU 1.2",
				"3 etasjer/11 meter",
			),
		},
		{
			Key:    "kvadraturen",
			Bounds: domain.BoundingBox{MinLat: 58.140, MaxLat: 58.150, MinLng: 7.985, MaxLng: 8.000},
			Plan: regulationPlan(
				"Reguleringsplan for Kvadraturen bevaringssone",
				"05.05.2018",
				"4204-20180012",
				"Spesialområde for bevaring av kulturhistorisk bygningsmasse.",
				[]string{"Spesialområde bevaring SP-1", "Forretning/kontor FK-2"},
				"Eksisterende bebyggelse, ingen utvidelse",
				"Eksisterende høyde/3 etasjer",
			),
		},
		{
			Key:    "grim",
			Bounds: domain.BoundingBox{MinLat: 58.125, MaxLat: 58.140, MinLng: 7.970, MaxLng: 7.990},
			Plan: regulationPlan(
				"Reguleringsplan for Grim næringspark",
				"14.01.2022",
				"4204-20210067",
				"Næringsområde for lett industri og lager.",
				[]string{"Næring/industri NI-1", "Lager/logistikk L-1", "Kontor K-1"},
				"BYA 60%, TU 1.0",
				"12 meter (industri)/15 meter (kontor)",
			),
		},
	}
}

// KristiansandDefaultPlan - umbrella plan for the rest of the municipality
func KristiansandDefaultPlan() domain.ZonePlan {
	planID := "4204-KDP-2019"
	return domain.ZonePlan{
		Name:             "Kommunedelplan for Kristiansand øst",
		Type:             domain.PlanTypeMunicipalSection,
		Status:           planStatusInForce,
		AdoptionDate:     "25.06.2019",
		PlanID:           &planID,
		Municipality:     domain.MunicipalityName,
		Description:      "Kommunedelplan som styrer utvikling i østre deler av kommunen.",
		LandUsePurposes:  []string{"LNF-område", "Spredt boligbebyggelse", "Naturområde"},
		UtilizationRatio: "BYA 15%, TU 0.3",
		HeightLimit:      "1.5 etasjer/6 meter",
		Documents:        []domain.PlanDocument{},
		SourceCategory:   SourceMunicipalSectionPlan,
	}
}

func regulationPlan(name, adopted, planID, description string, purposes []string, utilization, height string) domain.ZonePlan {
	return domain.ZonePlan{
		Name:             name,
		Type:             domain.PlanTypeRegulation,
		Status:           planStatusInForce,
		AdoptionDate:     adopted,
		PlanID:           &planID,
		Municipality:     domain.MunicipalityName,
		Description:      description,
		LandUsePurposes:  purposes,
		UtilizationRatio: utilization,
		HeightLimit:      height,
		Documents:        []domain.PlanDocument{},
		SourceCategory:   SourceRegulationPlan,
	}
}
