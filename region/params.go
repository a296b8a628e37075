package region

import "github.com/sonari-audio/engine/adsr"

// Trigger selects which event causes a region to sound (spec.md §3, GLOSSARY).
type Trigger uint8

const (
	TriggerAttack Trigger = iota
	TriggerRelease
	TriggerReleaseKey
	TriggerFirst
	TriggerLegato
)

// Params are the immutable region parameters, already validated and
// converted into the engine's native units (spec.md §3):
//   - PitchKeytrack is a fraction (cents/100), not raw cents.
//   - Tune is fractional semitones (cents/100).
//   - AmpVeltrack is a fraction in [-1,1] (not a percentage).
//   - Ampeg.Sustain is a fraction in [0,1] (not a percentage).
type Params struct {
	KeyRange    KeyRange
	VelRange    VelRange
	RandomRange RandomRange
	OnCCs       map[int]CCRange

	PitchKeycenter int // MIDI note number
	PitchKeytrack  float64
	Tune           float64 // fractional semitones

	AmpVeltrack float64 // [-1,1]
	Volume      float64 // dB
	RtDecay     float64 // dB/s

	Ampeg adsr.Params

	Trigger Trigger
	Group   uint32
	OffBy   uint32
}

// DefaultParams returns the SFZ-conventional region defaults (spec.md §6
// and original_source/src/sfz/engine.rs's RegionData::default): full key
// and velocity range, keycenter C4 (MIDI 60), chromatic keytrack, full
// velocity tracking, 0dB volume, Attack trigger, no group.
func DefaultParams() Params {
	return Params{
		KeyRange:       KeyRange{Lo: 0, Hi: 127},
		VelRange:       DefaultVelRange(),
		RandomRange:    RandomRange{},
		OnCCs:          map[int]CCRange{},
		PitchKeycenter: 60,
		PitchKeytrack:  1.0,
		AmpVeltrack:    1.0,
		Trigger:        TriggerAttack,
	}
}
