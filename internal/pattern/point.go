package pattern

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is a single click coordinate in reference-image pixel space.
// Callers must capture points against the image's own pixel grid, not the
// canvas it happens to be displayed on; tolerance is a fixed radius and is
// never rescaled to display size.
type Point struct {
	X int
	Y int
}

// MarshalJSON encodes the point as a two-element array, the format used by
// the persisted credential file.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] pair.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy [2]int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("invalid point: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Sequence is an ordered pattern of click points. Order is part of the
// credential: the same points clicked in a different order are a different
// pattern.
type Sequence []Point

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
