// Package adsr precomputes the three segments of an attack/decay/sustain/
// release amplitude envelope into dense tables, so the realtime path only
// ever indexes into a slice.
//
// Grounded on audio_chip.go's updateEnvelope (the teacher's own ADSR state
// machine) for the State/table-index idiom, and on the exact segment math
// the spec requires (original_source/soundfonts/src/envelopes.rs).
package adsr

import "math"

// dBFloor is the linear amplitude below which a release segment is
// considered finished, expressed in dB (spec.md §4.1, Open Questions).
const dBFloor = -160.0

// State is the envelope position of a single voice.
type State struct {
	kind  stateKind
	index int
}

type stateKind uint8

const (
	kindAttackDecay stateKind = iota
	kindSustain
	kindRelease
	kindInactive
)

// AttackDecay returns the state at the start of a note: the attack/hold/
// decay segment, index 0.
func AttackDecay() State { return State{kind: kindAttackDecay, index: 0} }

// Sustain returns the held-steady state.
func Sustain() State { return State{kind: kindSustain} }

// Release returns the state at the start of the release segment, index 0.
func Release() State { return State{kind: kindRelease, index: 0} }

// Inactive returns the terminal state; a voice in this state is dropped.
func Inactive() State { return State{kind: kindInactive} }

// IsActive reports whether the voice should still be mixed.
func (s State) IsActive() bool { return s.kind != kindInactive }

// IsReleasing reports whether the voice is already in its release segment.
func (s State) IsReleasing() bool { return s.kind == kindRelease }

// Params are the five envelope parameters, all already validated into
// their engine-native units (seconds for A/H/D/R, a 0..1 fraction for Ss).
type Params struct {
	Attack  float64
	Hold    float64
	Decay   float64
	Sustain float64
	Release float64
}

// Table holds the three precomputed envelope segments for one sample rate
// and block size. It is immutable after Build and safe to share between
// every voice of a region.
type Table struct {
	attackDecay []float32
	sustain     []float32
	release     []float32
	blockSize   int
	sustainAt   float32
}

// Build precomputes the attack/decay, sustain, and release tables for the
// given parameters, sample rate, and maximum block length. See spec.md
// §4.1 for the exact segment math and table-length rationale.
func Build(p Params, sampleRate float64, blockSize int) *Table {
	t := &Table{blockSize: blockSize, sustainAt: float32(p.Sustain)}
	t.attackDecay = buildAttackDecay(p, sampleRate, blockSize)
	t.sustain = buildSustain(p.Sustain, blockSize)
	t.release = buildRelease(p, sampleRate, blockSize)
	return t
}

// neededSamples mirrors calc_needed_samples: round the segment length to
// samples, then pad out to a whole number of blocks plus one spare block
// of runway (spec.md §4.1's two-time-constants rationale).
func neededSamples(length, sampleRate float64, blockSize int) int {
	needed := int(math.Round(length * sampleRate))
	blocks := needed/blockSize + 2
	return blocks * blockSize
}

func buildAttackDecay(p Params, sampleRate float64, blockSize int) []float32 {
	length := neededSamples(p.Attack+p.Hold+2*p.Decay, sampleRate, blockSize)
	table := make([]float32, length)

	var decayStep float64
	if p.Decay > 0 {
		decayStep = math.Exp(-8.0 / (p.Decay * sampleRate))
	}
	last := 1.0 - p.Sustain

	for i := range table {
		t := float64(i) / sampleRate
		switch {
		case t < p.Attack:
			table[i] = float32(t / p.Attack)
		case t < p.Attack+p.Hold:
			table[i] = 1.0
		case t < p.Attack+p.Hold+2*p.Decay:
			last *= decayStep
			table[i] = float32(p.Sustain + last)
		default:
			table[i] = float32(p.Sustain)
		}
	}
	return table
}

func buildSustain(sustain float64, blockSize int) []float32 {
	table := make([]float32, blockSize)
	for i := range table {
		table[i] = float32(sustain)
	}
	return table
}

func buildRelease(p Params, sampleRate float64, blockSize int) []float32 {
	length := neededSamples(2*p.Release, sampleRate, blockSize)
	table := make([]float32, length)

	var releaseStep float64
	if p.Release > 0 {
		releaseStep = math.Exp(-8.0 / (p.Release * sampleRate))
	}
	last := p.Sustain

	for i := range table {
		last *= releaseStep
		table[i] = float32(last)
	}
	return table
}

// Active returns the segment table and read index for state, and logs a
// RuntimeAnomaly (substituting the sustain table) if state is Inactive —
// which should never happen, since an Inactive voice is dropped before the
// next process call.
func (t *Table) Active(state State, onAnomaly func(detail string)) ([]float32, int) {
	switch state.kind {
	case kindAttackDecay:
		return t.attackDecay, state.index
	case kindRelease:
		return t.release, state.index
	case kindSustain:
		return t.sustain, 0
	default:
		if onAnomaly != nil {
			onAnomaly("envelope requested while voice state is Inactive; substituting sustain")
		}
		return t.sustain, 0
	}
}

// Advance computes the next State after reading up through newIndex
// samples of the table for the current segment.
func (t *Table) Advance(state State, newIndex int) State {
	switch state.kind {
	case kindAttackDecay:
		if newIndex < len(t.attackDecay)-t.blockSize {
			return State{kind: kindAttackDecay, index: newIndex}
		}
		return Sustain()
	case kindRelease:
		floor := float32(math.Pow(10, dBFloor/20.0))
		if newIndex < len(t.release)-t.blockSize && t.release[newIndex] > floor {
			return State{kind: kindRelease, index: newIndex}
		}
		return Inactive()
	default:
		return state
	}
}
