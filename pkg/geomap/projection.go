package geomap

import "math"

// Host editors store entity geometry in spherical (Web) Mercator and
// render the viewport in geographic coordinates. Detection snapshots
// both the entity center and the viewport center in the same display
// system so a later recenter lands where detection happened.

const earthRadius = 6378137.0 // WGS84 equatorial radius, meters

// Project converts a geographic point (lon/lat degrees) to spherical
// Mercator meters. Latitude is clamped to the Mercator domain.
func Project(p Point) Point {
	lat := math.Max(-85.05112878, math.Min(85.05112878, p.Y))
	return Point{
		X: earthRadius * p.X * math.Pi / 180,
		Y: earthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)),
	}
}

// Unproject converts spherical Mercator meters back to lon/lat degrees.
func Unproject(p Point) Point {
	return Point{
		X: p.X / earthRadius * 180 / math.Pi,
		Y: (2*math.Atan(math.Exp(p.Y/earthRadius)) - math.Pi/2) * 180 / math.Pi,
	}
}

// ProjectBounds projects both corners of geographic bounds.
func ProjectBounds(b Bounds) Bounds {
	minP := Project(Point{X: b.MinX, Y: b.MinY})
	maxP := Project(Point{X: b.MaxX, Y: b.MaxY})
	return NewBounds(minP.X, minP.Y, maxP.X, maxP.Y)
}
