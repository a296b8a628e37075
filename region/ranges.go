package region

// KeyRange is an inclusive MIDI-note interval. Each bound tracks its own
// disabled state independently (set when that bound was given as -1 in the
// wire format); the range matches only while both bounds are enabled
// (spec.md §3, "key_range"), mirroring the two independently-optional
// bounds of the original note range.
type KeyRange struct {
	LoDisabled, HiDisabled bool
	Lo, Hi                 int
}

// Contains reports whether note falls inside the range.
func (k KeyRange) Contains(note int) bool {
	if k.LoDisabled || k.HiDisabled {
		return false
	}
	return note >= k.Lo && note <= k.Hi
}

// VelRange is an inclusive velocity interval over [0,127].
type VelRange struct {
	Lo, Hi int
}

// Contains reports whether velocity falls inside the range.
func (v VelRange) Contains(velocity int) bool {
	return velocity >= v.Lo && velocity <= v.Hi
}

// DefaultVelRange covers the full MIDI velocity range.
func DefaultVelRange() VelRange { return VelRange{Lo: 0, Hi: 127} }

// RandomRange is a half-open float interval over [0,1). An interval with
// Lo == Hi (the zero value included) matches every draw (spec.md §3).
type RandomRange struct {
	Lo, Hi float64
}

// Contains reports whether draw selects this region.
func (r RandomRange) Contains(draw float64) bool {
	if r.Lo == r.Hi {
		return true
	}
	return draw >= r.Lo && draw < r.Hi
}

// CCRange is an inclusive controller-value interval. Each bound tracks its
// own disabled state independently, set when that bound was given as -1 in
// the wire format; the range matches only while both bounds are enabled
// (spec.md §3, on_loccN/on_hiccN).
type CCRange struct {
	LoDisabled, HiDisabled bool
	Lo, Hi                 int
}

// Contains reports whether value falls inside the range.
func (c CCRange) Contains(value int) bool {
	if c.LoDisabled || c.HiDisabled {
		return false
	}
	return value >= c.Lo && value <= c.Hi
}
