package geom

// BoundingBox is the axis-aligned lat/lon extent of a point set. It is
// derived from a set and only used to prune candidates; it is never
// persisted independently.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Bounds computes the bounding box of a non-empty point set.
func Bounds(points PointSet) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrEmptyPointSet
	}
	b := BoundingBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	return b, nil
}

// Contains reports whether p lies inside the box, borders included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Expand grows the box by margin degrees on every side, clamped to the legal
// coordinate domain.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	out := BoundingBox{
		MinLat: b.MinLat - margin, MaxLat: b.MaxLat + margin,
		MinLon: b.MinLon - margin, MaxLon: b.MaxLon + margin,
	}
	if out.MinLat < MinLatDegrees {
		out.MinLat = MinLatDegrees
	}
	if out.MaxLat > MaxLatDegrees {
		out.MaxLat = MaxLatDegrees
	}
	if out.MinLon < MinLonDegrees {
		out.MinLon = MinLonDegrees
	}
	if out.MaxLon > MaxLonDegrees {
		out.MaxLon = MaxLonDegrees
	}
	return out
}
