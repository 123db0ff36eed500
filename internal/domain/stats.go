package domain

import "time"

// LookupCounters - how plan lookups ended since the counters were created
type LookupCounters struct {
	Total    int64            `json:"total"`
	ByPlan   map[string]int64 `json:"by_plan"`
	Default  int64            `json:"default"`
	Errors   int64            `json:"errors"`
	Rejected int64            `json:"rejected"`
}

// Statistics - service level statistics
type Statistics struct {
	RegionCount        int            `json:"region_count"`
	MunicipalityExtent BoundingBox    `json:"municipality_extent"`
	UserCount          int64          `json:"user_count"`
	Lookups            LookupCounters `json:"lookups"`
	GeneratedAt        time.Time      `json:"generated_at"`
}

// LookupOutcome - counter bucket for one lookup
type LookupOutcome struct {
	PlanID   string
	Default  bool
	Error    bool
	Rejected bool
}
