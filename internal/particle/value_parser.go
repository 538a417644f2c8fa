// Package particle provides the value notation and emitter profile records used to
// describe glass button particle emissions.
//
// Values are written the same way in YAML tuning files and in Go defaults:
//   - Fixed value: "6" → Min=6, Max=6
//   - Range: "[0.85 1.45]" → uniform sample in [Min, Max)
//   - Single bracket value: "[24]" → fixed
//   - Keyframes: "0,0 0.5,1 1,0" → (time,value) pairs, evaluated by EvaluateKeyframes
package particle

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive-exclusive numeric interval sampled uniformly.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a degenerate range that always samples v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample returns a uniform value in [Min, Max). A degenerate range returns Min.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether v lies in [Min, Max), or equals Min for a fixed range.
func (r Range) Contains(v float64) bool {
	if r.Max <= r.Min {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

// String renders the range back into value notation.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// UnmarshalYAML accepts either a scalar number or a value-notation string.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: range must be a scalar, got kind %d", node.Line, node.Kind)
	}
	parsed, err := ParseRange(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML writes the range in value notation.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// ParseRange parses a fixed value or a "[min max]" range.
// Reversed bounds are swapped so Sample never sees a negative span.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty value")
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range value %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			lo, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range min %q: %w", s, err)
			}
			hi, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("invalid range max %q: %w", s, err)
			}
			if hi < lo {
				lo, hi = hi, lo
			}
			return Range{Min: lo, Max: hi}, nil
		default:
			return Range{}, fmt.Errorf("range %q must have one or two values", s)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// MustParseRange is ParseRange for package-level defaults.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Keyframe represents a single keyframe in an animation curve.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64
}

// ParseKeyframes parses "time,value" pairs separated by whitespace,
// e.g. "0,0 0.5,1 1,0". Keyframes must be given in ascending time order.
func ParseKeyframes(s string) ([]Keyframe, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty keyframes")
	}

	keyframes := make([]Keyframe, 0, len(fields))
	for _, f := range fields {
		pair := strings.Split(f, ",")
		if len(pair) != 2 {
			return nil, fmt.Errorf("keyframe %q is not a time,value pair", f)
		}
		t, err := strconv.ParseFloat(pair[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid keyframe time %q: %w", f, err)
		}
		v, err := strconv.ParseFloat(pair[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid keyframe value %q: %w", f, err)
		}
		if n := len(keyframes); n > 0 && t < keyframes[n-1].Time {
			return nil, fmt.Errorf("keyframe %q is out of order", f)
		}
		keyframes = append(keyframes, Keyframe{Time: t, Value: v})
	}
	return keyframes, nil
}

// EvaluateKeyframes linearly interpolates keyframes at normalized time t (clamped to [0,1]).
func EvaluateKeyframes(keyframes []Keyframe, t float64) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))

	if t <= keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]
		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k1.Value
			}
			ratio := (t - k0.Time) / duration
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	return keyframes[len(keyframes)-1].Value
}
