package zoning

import (
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/planinfo-service/internal/domain"
)

// searchTolerance widens the query point so candidates touching it on an edge are
// returned; exact containment is re-checked afterwards.
const searchTolerance = 1e-9

type indexedRegion struct {
	priority int
	region   domain.ZoneRegion
	rect     rtreego.Rect
}

func (r *indexedRegion) Bounds() rtreego.Rect {
	return r.rect
}

// IndexedResolver answers lookups through an R-tree over the region boxes. Among the
// candidates that contain the point the one with the lowest priority wins, so results
// are identical to TableResolver over the same table.
type IndexedResolver struct {
	tree    *rtreego.Rtree
	table   *TableResolver
	entries int
}

// NewIndexedResolver builds the tree. Degenerate boxes are padded for indexing only.
func NewIndexedResolver(regions []domain.ZoneRegion, defaultPlan domain.ZonePlan) (*IndexedResolver, error) {
	table := NewTableResolver(regions, defaultPlan)
	tree := rtreego.NewTree(2, 2, 8)

	for i, region := range table.regions {
		b := region.Bounds
		if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
			return nil, fmt.Errorf("region %q has inverted bounds", region.Key)
		}

		rect, err := rtreego.NewRect(
			rtreego.Point{b.MinLat, b.MinLng},
			[]float64{padLength(b.MaxLat - b.MinLat), padLength(b.MaxLng - b.MinLng)},
		)
		if err != nil {
			return nil, fmt.Errorf("index region %q: %w", region.Key, err)
		}

		tree.Insert(&indexedRegion{priority: i, region: region, rect: rect})
	}

	return &IndexedResolver{tree: tree, table: table, entries: len(table.regions)}, nil
}

func (r *IndexedResolver) Resolve(p domain.GeoPoint) (domain.ZonePlan, string) {
	query := rtreego.Point{p.Lat, p.Lng}.ToRect(searchTolerance)

	var best *indexedRegion
	for _, obj := range r.tree.SearchIntersect(query) {
		candidate := obj.(*indexedRegion)
		if !candidate.region.Bounds.Contains(p) {
			continue
		}
		if best == nil || candidate.priority < best.priority {
			best = candidate
		}
	}

	if best == nil {
		return r.table.defaultPlan.Clone(), ""
	}
	return best.region.Plan.Clone(), best.region.Key
}

func (r *IndexedResolver) Regions() []domain.ZoneRegion {
	return r.table.Regions()
}

func (r *IndexedResolver) DefaultPlan() domain.ZonePlan {
	return r.table.DefaultPlan()
}

// Size - number of indexed regions
func (r *IndexedResolver) Size() int {
	return r.entries
}

func padLength(l float64) float64 {
	if l < searchTolerance {
		return searchTolerance
	}
	return l
}
