package adsr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func round2(v float32) float64 {
	return math.Round(float64(v)*100) / 100
}

func round4(v float32) float64 {
	return math.Round(float64(v)*10000) / 10000
}

// TestMonophonicADSR reproduces the attack/hold/decay/sustain worked
// example: attack=2, hold=3, decay=4, sustain=60%, release=5, sample rate 1.
func TestMonophonicADSR(t *testing.T) {
	table := Build(Params{Attack: 2, Hold: 3, Decay: 4, Sustain: 0.6, Release: 5}, 1, 4)

	state := AttackDecay()
	got := make([]float64, 0, 12)
	idx := 0
	for i := 0; i < 12; i++ {
		segment, pos := table.Active(state, nil)
		require.Less(t, pos, len(segment)+1)
		var v float32
		if pos < len(segment) {
			v = segment[pos]
		} else {
			v = segment[len(segment)-1]
		}
		got = append(got, round2(v))
		idx = pos + 1
		state = table.Advance(state, idx)
	}

	want := []float64{0.0, 0.5, 1.0, 1.0, 1.0, 0.65, 0.61, 0.6, 0.6, 0.6, 0.6, 0.6}
	assert.Equal(t, want, got)
}

// TestReleaseTail reproduces the note-on-then-immediate-note-off release
// worked example.
func TestReleaseTail(t *testing.T) {
	table := Build(Params{Attack: 2, Hold: 3, Decay: 4, Sustain: 0.6, Release: 5}, 1, 4)

	state := Release()
	got := make([]float64, 0, 8)
	idx := 0
	for i := 0; i < 8; i++ {
		segment, pos := table.Active(state, nil)
		var v float32
		if pos < len(segment) {
			v = segment[pos]
		} else {
			v = segment[len(segment)-1]
		}
		got = append(got, round4(v))
		idx = pos + 1
		state = table.Advance(state, idx)
	}

	want := []float64{0.1211, 0.0245, 0.0049, 0.0010, 0.0002, 0.0, 0.0, 0.0}
	assert.Equal(t, want, got)
}

func TestTableActiveSubstitutesSustainWhenInactive(t *testing.T) {
	table := Build(Params{Attack: 1, Hold: 0, Decay: 1, Sustain: 0.5, Release: 1}, 100, 64)

	var reported string
	segment, pos := table.Active(Inactive(), func(detail string) { reported = detail })

	assert.NotEmpty(t, reported)
	require.NotEmpty(t, segment)
	assert.Equal(t, 0, pos)
}

func TestSustainTableHoldsConstantLevel(t *testing.T) {
	table := Build(Params{Attack: 0, Hold: 0, Decay: 0, Sustain: 0.75, Release: 1}, 10, 4)
	segment, pos := table.Active(Sustain(), nil)
	assert.InDelta(t, 0.75, float64(segment[pos]), 1e-9)
}
