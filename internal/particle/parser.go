package particle

import (
	"fmt"
)

// ParseProfile parses every value of an EmitterProfile.
//
// Count may be empty (the caller supplies it); all other fields are required.
func ParseProfile(p EmitterProfile) (Profile, error) {
	var out Profile
	var err error

	if p.Count != "" {
		if out.Count, err = ParseRange(p.Count); err != nil {
			return Profile{}, fmt.Errorf("count: %w", err)
		}
		if out.Count.Min < 0 {
			return Profile{}, fmt.Errorf("count: must not be negative, got %s", out.Count)
		}
		out.HasCount = true
	}

	fields := []struct {
		name string
		src  string
		dst  *Range
	}{
		{"jitter", p.Jitter, &out.Jitter},
		{"base_size", p.BaseSize, &out.BaseSize},
		{"speed", p.Speed, &out.Speed},
		{"size_scale", p.SizeScale, &out.SizeScale},
		{"lift", p.Lift, &out.Lift},
	}
	for _, f := range fields {
		r, err := ParseRange(f.src)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = r
	}

	return out, nil
}
