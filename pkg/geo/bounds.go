package geo

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"

	"github.com/matzehuels/roadgraph/pkg/errors"
)

// BoundingBox is a geographic rectangle in decimal degrees.
//
// A valid box has finite fields, North > South, East > West, latitudes in
// [-90, 90] and longitudes in [-180, 180]. Boxes crossing the antimeridian
// are not representable.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// LatSpan returns North - South in degrees.
func (b BoundingBox) LatSpan() float64 { return b.North - b.South }

// LonSpan returns East - West in degrees.
func (b BoundingBox) LonSpan() float64 { return b.East - b.West }

// Bound converts the box to an orb.Bound with Min at (West, South) and Max
// at (East, North).
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// FromBound converts an orb.Bound back into a BoundingBox.
func FromBound(bound orb.Bound) BoundingBox {
	return BoundingBox{
		North: bound.Max[1],
		South: bound.Min[1],
		East:  bound.Max[0],
		West:  bound.Min[0],
	}
}

// fieldOrder is the order in which per-field checks report problems.
var fieldOrder = []string{"north", "south", "east", "west"}

// Validate checks b against the bounding-box rules and returns an
// INVALID_BOUNDS error naming the first rule that fails.
//
// Rules are checked in order: every field is a finite number, north > south,
// latitudes within [-90, 90], longitudes within [-180, 180], east > west.
func Validate(b BoundingBox) error {
	values := map[string]float64{"north": b.North, "south": b.South, "east": b.East, "west": b.West}
	for _, name := range fieldOrder {
		if !isFinite(values[name]) {
			return errors.New(errors.ErrCodeInvalidBounds, "%s must be a finite number", name)
		}
	}
	return validateOrdering(b)
}

// ParseBounds validates an untyped bounding-box value, as received from a
// JSON request body or any other loosely typed source, and returns the typed
// box.
//
// Accepted inputs are a BoundingBox, a non-nil *BoundingBox, a
// map[string]any (decoded JSON object, numbers as float64 or json.Number) or
// raw JSON bytes of such an object. Anything else fails the shape check.
func ParseBounds(v any) (BoundingBox, error) {
	switch b := v.(type) {
	case BoundingBox:
		return b, Validate(b)
	case *BoundingBox:
		if b == nil {
			return BoundingBox{}, errShape()
		}
		return *b, Validate(*b)
	case json.RawMessage:
		return parseBoundsJSON(b)
	case []byte:
		return parseBoundsJSON(b)
	case map[string]any:
		return parseBoundsMap(b)
	default:
		return BoundingBox{}, errShape()
	}
}

func parseBoundsJSON(data []byte) (BoundingBox, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return BoundingBox{}, errShape()
	}
	return parseBoundsMap(m)
}

func parseBoundsMap(m map[string]any) (BoundingBox, error) {
	if m == nil {
		return BoundingBox{}, errShape()
	}
	values := make(map[string]float64, len(fieldOrder))
	for _, name := range fieldOrder {
		f, ok := toFloat(m[name])
		if !ok || !isFinite(f) {
			return BoundingBox{}, errors.New(errors.ErrCodeInvalidBounds, "%s must be a finite number", name)
		}
		values[name] = f
	}
	b := BoundingBox{
		North: values["north"],
		South: values["south"],
		East:  values["east"],
		West:  values["west"],
	}
	return b, validateOrdering(b)
}

func validateOrdering(b BoundingBox) error {
	switch {
	case b.North <= b.South:
		return errors.New(errors.ErrCodeInvalidBounds, "north must be greater than south")
	case !inRange(b.North, 90) || !inRange(b.South, 90):
		return errors.New(errors.ErrCodeInvalidBounds, "latitude must be between -90 and 90")
	case !inRange(b.East, 180) || !inRange(b.West, 180):
		return errors.New(errors.ErrCodeInvalidBounds, "longitude must be between -180 and 180")
	case b.East <= b.West:
		return errors.New(errors.ErrCodeInvalidBounds, "east must be greater than west")
	}
	return nil
}

func errShape() error {
	return errors.New(errors.ErrCodeInvalidBounds, "bounds must be an object with north, south, east and west")
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func inRange(v, limit float64) bool {
	return v >= -limit && v <= limit
}
