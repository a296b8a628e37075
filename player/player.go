// Package player implements the polyphonic sample mixer: one region's
// audio data plus its currently sounding voices, producing a stereo block
// via cubic-interpolated, pitch-shifted, envelope-modulated mixing.
//
// Grounded on original_source/soundfonts/src/sample.rs (Sample/Voice/cubic)
// for the mixing algorithm, and on audio_chip.go's Channel (hot/cold field
// layout, lazy buffer growth) for the realtime-safe Go shape.
package player

import (
	"math"

	"github.com/sonari-audio/engine/adsr"
)

// AnomalyFunc receives a RuntimeAnomaly detail string. It is called from
// the realtime path, so it must not allocate or block; typically it closes
// over a sonari.Logger and rate-limits internally if needed.
type AnomalyFunc func(detail string)

// Voice is one currently sounding occurrence of a region's sample.
type Voice struct {
	note             int
	frequency        float64
	position         float64
	gain             float32
	envelopeState    adsr.State
	lastEnvelopeGain float32
	releaseStartGain float32
}

// Player owns one region's interleaved stereo sample data and its active
// voices.
type Player struct {
	data             []float32 // interleaved stereo, padded with trailing zeros
	realSampleLength float64   // frames, unpadded
	nativeFrequency  float64
	maxBlockLength   int
	envelope         *adsr.Table
	voices           []Voice
	onAnomaly        AnomalyFunc
}

// New builds a Player over sampleData (interleaved stereo float32),
// padding it so that cubic interpolation can always read four frames
// around the read head without bounds checks on the hot path (spec.md §3
// invariant on sample padding).
func New(sampleData []float32, nativeFrequency float64, maxBlockLength int, envelope *adsr.Table, onAnomaly AnomalyFunc) *Player {
	frames := len(sampleData) / 2
	reserveFrames := (frames/maxBlockLength + 2) * maxBlockLength
	padded := make([]float32, reserveFrames*2)
	copy(padded, sampleData)

	if onAnomaly == nil {
		onAnomaly = func(string) {}
	}

	return &Player{
		data:             padded,
		realSampleLength: float64(frames),
		nativeFrequency:  nativeFrequency,
		maxBlockLength:   maxBlockLength,
		envelope:         envelope,
		onAnomaly:        onAnomaly,
	}
}

// IsPlaying reports whether any voice is currently active.
func (p *Player) IsPlaying() bool { return len(p.voices) > 0 }

// IsPlayingNote reports whether a non-releasing voice with this note exists.
func (p *Player) IsPlayingNote(note int) bool {
	for i := range p.voices {
		if p.voices[i].note == note && !p.voices[i].envelopeState.IsReleasing() {
			return true
		}
	}
	return false
}

// IsReleasingNote reports whether a releasing voice with this note exists.
func (p *Player) IsReleasingNote(note int) bool {
	for i := range p.voices {
		if p.voices[i].note == note && p.voices[i].envelopeState.IsReleasing() {
			return true
		}
	}
	return false
}

// NoteOn starts a new voice at the given frequency and linear gain. Any
// existing non-releasing voice for the same note is moved into Release
// first, so a retrigger cleanly tails off the previous occurrence instead
// of being cut or doubled (spec.md §4.2).
func (p *Player) NoteOn(note int, frequency float64, gain float32) {
	p.noteOffLocked(note)
	p.voices = append(p.voices, Voice{
		note:             note,
		frequency:        frequency,
		gain:             gain,
		envelopeState:    adsr.AttackDecay(),
		lastEnvelopeGain: 1.0,
		releaseStartGain: 1.0,
	})
}

// NoteOff transitions every non-releasing voice for note into Release.
func (p *Player) NoteOff(note int) {
	p.noteOffLocked(note)
}

func (p *Player) noteOffLocked(note int) {
	for i := range p.voices {
		v := &p.voices[i]
		if v.note == note && !v.envelopeState.IsReleasing() {
			v.releaseStartGain = v.lastEnvelopeGain
			v.envelopeState = adsr.Release()
		}
	}
}

// AllNotesOff transitions every voice into Release, regardless of note.
func (p *Player) AllNotesOff() {
	for i := range p.voices {
		v := &p.voices[i]
		if !v.envelopeState.IsReleasing() {
			v.releaseStartGain = v.lastEnvelopeGain
			v.envelopeState = adsr.Release()
		}
	}
}

// Process additively mixes every active voice into outLeft/outRight, which
// must be equal length and are NOT zeroed by Process (the Engine zeroes
// the bus once per block, spec.md §4.4). Finished voices are retired at
// the end of the call.
func (p *Player) Process(outLeft, outRight []float32) {
	n := len(outLeft)

	for i := range p.voices {
		v := &p.voices[i]
		ratio := v.frequency / p.nativeFrequency

		neededFrames := int(math.Ceil(v.position+float64(p.maxBlockLength)*ratio)) + 5
		if needed := neededFrames * 2; needed >= len(p.data) {
			grown := make([]float32, needed)
			copy(grown, p.data)
			p.data = grown
		}

		envTable, envPos := p.envelope.Active(v.envelopeState, p.onAnomaly)

		for j := 0; j < n; j++ {
			samplePos := int(v.position)
			frac := v.position - float64(samplePos)

			l := cubic(p.data, 2*samplePos, frac)
			r := cubic(p.data, 2*samplePos+1, frac)

			var envGain float32
			if envPos < len(envTable) {
				envGain = envTable[envPos]
			} else {
				envGain = envTable[len(envTable)-1]
			}
			gain := v.gain * envGain * v.releaseStartGain

			outLeft[j] += gain * l
			outRight[j] += gain * r

			v.position += ratio
			envPos++
		}

		if envPos < len(envTable) {
			v.lastEnvelopeGain = envTable[envPos]
		} else {
			v.lastEnvelopeGain = envTable[len(envTable)-1]
		}
		v.envelopeState = p.envelope.Advance(v.envelopeState, envPos)
	}

	realLength := p.realSampleLength
	kept := p.voices[:0]
	for _, v := range p.voices {
		if v.position < realLength && v.envelopeState.IsActive() {
			kept = append(kept, v)
		}
	}
	p.voices = kept
}

// cubic performs the four-point cubic interpolation spec.md §4.2 requires,
// reading the stride-2 (stereo-interleaved) buffer at offset pos with the
// fractional position frac in [0,1). pos-2 wraps modulo the buffer length,
// matching the reference implementation's ring read for p0.
func cubic(data []float32, pos int, frac float64) float32 {
	length := len(data)

	p0idx := ((pos + length) - 2) % length
	p0 := float64(data[p0idx])
	p1 := float64(data[pos])
	p2 := float64(data[pos+2])
	p3 := float64(data[pos+4])

	a := frac
	b := 1.0 - a
	c := a * b

	v := (1.0+1.5*c)*(p1*b+p2*a) - 0.5*c*(p0*b+p1+p2+p3*a)
	return float32(v)
}
