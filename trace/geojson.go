package trace

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// GeometryType represents the GeoJSON geometry type
type GeometryType string

const (
	GeometryPolygon      GeometryType = "Polygon"
	GeometryMultiPolygon GeometryType = "MultiPolygon"
)

// Geometry represents a GeoJSON geometry object
type Geometry struct {
	Type        GeometryType    `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature represents a GeoJSON feature with geometry and properties
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   *Geometry              `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
	ID         interface{}            `json:"id,omitempty"`
}

// FeatureCollection represents a GeoJSON FeatureCollection
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// NewFeatureCollection creates a new empty FeatureCollection
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]*Feature, 0),
	}
}

// AddFeature appends a feature to the collection
func (fc *FeatureCollection) AddFeature(f *Feature) {
	fc.Features = append(fc.Features, f)
}

// PolygonToGeometry converts an orb.Polygon to a GeoJSON Polygon geometry
func PolygonToGeometry(poly orb.Polygon) *Geometry {
	rings := make([][][2]float64, len(poly))
	for i, ring := range poly {
		coords := make([][2]float64, len(ring))
		for j, pt := range ring {
			coords[j] = [2]float64{pt[0], pt[1]}
		}
		rings[i] = coords
	}

	coordsJSON, _ := json.Marshal(rings)
	return &Geometry{
		Type:        GeometryPolygon,
		Coordinates: coordsJSON,
	}
}

// ToGeoJSON exports the trace as a FeatureCollection: one Polygon feature
// per filled region, with the background contours directly inside it as
// interior rings. Curves are tessellated at the given resolution; a
// positive tolerance additionally simplifies the rings with
// Douglas-Peucker.
func (t *Result) ToGeoJSON(res int, tolerance float64) *FeatureCollection {
	fc := NewFeatureCollection()
	id := 0
	for _, root := range t.Roots {
		addPolygonFeatures(fc, root, res, tolerance, &id)
	}
	return fc
}

// addPolygonFeatures emits the feature for one filled region and recurses
// into the filled regions nested inside its holes.
func addPolygonFeatures(fc *FeatureCollection, p *Path, res int, tolerance float64, id *int) {
	poly := orb.Polygon{pathRing(p, res, tolerance)}
	for _, hole := range p.Children {
		poly = append(poly, pathRing(hole, res, tolerance))
	}

	props := map[string]interface{}{
		"area":     planar.Area(poly),
		"segments": p.FinalCurve().Len(),
		"holes":    len(p.Children),
	}
	fc.AddFeature(&Feature{
		Type:       "Feature",
		Geometry:   PolygonToGeometry(poly),
		Properties: props,
		ID:         *id,
	})
	*id++

	for _, hole := range p.Children {
		for _, island := range hole.Children {
			addPolygonFeatures(fc, island, res, tolerance, id)
		}
	}
}

// pathRing tessellates one curve into a closed orb.Ring
func pathRing(p *Path, res int, tolerance float64) orb.Ring {
	pts := p.FinalCurve().Tessellate(res)
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, pt := range pts {
		ring = append(ring, orb.Point{pt.X, pt.Y})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	if tolerance > 0 {
		simplified := simplify.DouglasPeucker(tolerance).Simplify(ring.Clone())
		if s, ok := simplified.(orb.Ring); ok && len(s) >= 4 {
			ring = s
		}
	}
	return ring
}
