// Package layout maps resolved ages onto timeline coordinates and keeps
// every top-level entry on a stable row.
package layout

// DefaultMaxAge is the right edge of the timeline domain.
const DefaultMaxAge = 100

// Scale maps ages in [CurrentAge, MaxAge] linearly onto [0, Width].
type Scale struct {
	CurrentAge float64
	MaxAge     float64
	Width      float64
}

// X returns the horizontal position of age. Ages outside the domain
// extrapolate; callers clip if they need to.
func (s Scale) X(age float64) float64 {
	span := s.MaxAge - s.CurrentAge
	if span == 0 {
		return 0
	}
	return (age - s.CurrentAge) / span * s.Width
}
