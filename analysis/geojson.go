package analysis

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the ranked points as GeoJSON points in
// longitude/latitude with their rank, value and unit as properties.
func (r *Report) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range r.Points {
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.Properties["rank"] = p.Rank
		f.Properties["accumulated_value"] = p.Value
		f.Properties["value_unit"] = p.Unit
		f.Properties["row"] = p.Row
		f.Properties["col"] = p.Col
		if p.Label != "" {
			f.Properties["label"] = p.Label
		}
		fc.Append(f)
	}
	return fc
}
