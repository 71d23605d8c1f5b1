package scene

import (
	"sort"

	"github.com/kylittle/Crucible/types"
)

// Interpolation mode between two keyframes.
type Interpolation uint8

const (
	// Hold the previous key's value until the next key.
	InterpStep Interpolation = iota

	// Linear blend between keys.
	InterpLinear

	// Smoothstep blend; eases in and out of each key.
	InterpSmooth
)

// A single keyframe on a timeline.
type Keyframe struct {
	Time   float32
	Value  types.Vec3
	Interp Interpolation
}

// Timeline is a keyframed Vec3 track sampled at ray/frame times. Outside the
// key range the track clamps to its first/last value, so a static object is
// just a single-key timeline. Timelines are immutable during rendering.
type Timeline struct {
	keys []Keyframe
}

// Create a timeline holding a single constant value.
func ConstantTimeline(value types.Vec3) *Timeline {
	return &Timeline{keys: []Keyframe{{Time: 0, Value: value, Interp: InterpStep}}}
}

// Create a timeline from a keyframe list. Keys are sorted by time.
func NewTimeline(keys ...Keyframe) *Timeline {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &Timeline{keys: sorted}
}

// Append a keyframe, keeping keys time-ordered. Returns the timeline for
// chained scene construction.
func (tl *Timeline) AddKey(time float32, value types.Vec3, interp Interpolation) *Timeline {
	tl.keys = append(tl.keys, Keyframe{Time: time, Value: value, Interp: interp})
	sort.Slice(tl.keys, func(i, j int) bool { return tl.keys[i].Time < tl.keys[j].Time })
	return tl
}

// Returns true if the track can change over time.
func (tl *Timeline) Animated() bool {
	return tl != nil && len(tl.keys) > 1
}

// Sample the track at a point in time.
func (tl *Timeline) At(t float32) types.Vec3 {
	if len(tl.keys) == 0 {
		return types.Vec3{}
	}
	if t <= tl.keys[0].Time {
		return tl.keys[0].Value
	}
	last := len(tl.keys) - 1
	if t >= tl.keys[last].Time {
		return tl.keys[last].Value
	}

	// Find the segment containing t.
	seg := sort.Search(len(tl.keys), func(i int) bool { return tl.keys[i].Time > t }) - 1
	k0, k1 := tl.keys[seg], tl.keys[seg+1]

	switch k1.Interp {
	case InterpStep:
		return k0.Value
	case InterpSmooth:
		s := (t - k0.Time) / (k1.Time - k0.Time)
		s = s * s * (3 - 2*s)
		return types.Lerp(k0.Value, k1.Value, s)
	default:
		s := (t - k0.Time) / (k1.Time - k0.Time)
		return types.Lerp(k0.Value, k1.Value, s)
	}
}
