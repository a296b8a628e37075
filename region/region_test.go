package region

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonari-audio/engine/adsr"
	"github.com/sonari-audio/engine/event"
)

func constantStereoSample(value float32, frames int) []float32 {
	data := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		data[2*i] = value
		data[2*i+1] = value
	}
	return data
}

func sustainedParams() Params {
	p := DefaultParams()
	p.Ampeg = adsr.Params{Sustain: 1.0}
	return p
}

// TestVelocityGain reproduces the velocity-to-gain worked example: velocity
// 63 with the default amp_veltrack=1 and volume=0dB yields
// to_linear(-20*log10(127^2/63^2)).
func TestVelocityGain(t *testing.T) {
	params := sustainedParams()
	sample := constantStereoSample(1.0, 64)
	r := New(params, sample, 1, 4, nil)

	require.True(t, r.PassEvent(event.NoteOn(60, 63), 0))

	left := make([]float32, 1)
	right := make([]float32, 1)
	r.Process(left, right)

	want := math.Pow(10, -20*math.Log10(127.0*127.0/(63.0*63.0))/20)
	assert.InDelta(t, want, float64(left[0]), 1e-6)
}

// TestGroupOffBy reproduces the group/off_by worked example: activating a
// group silences any region carrying that group or off_by number, except
// the region that just fired it.
func TestGroupOffBy(t *testing.T) {
	offByRegion := sustainedParams()
	offByRegion.OffBy = 2
	offByRegion.KeyRange = KeyRange{Lo: 60, Hi: 60}

	groupRegion := sustainedParams()
	groupRegion.Group = 2
	groupRegion.KeyRange = KeyRange{Lo: 61, Hi: 61}

	sample := constantStereoSample(1.0, 64)
	r1 := New(offByRegion, sample, 100, 8, nil)
	r2 := New(groupRegion, sample, 100, 8, nil)

	// Event 1: note 60 reaches only the off_by region. pass_event runs on
	// every region before any group_activated call, per the Engine's
	// two-phase fan-out (spec.md §4.4).
	event1 := event.NoteOn(60, 127)
	fired1 := r1.PassEvent(event1, 0)
	_ = r2.PassEvent(event1, 0)
	require.True(t, fired1)
	if groupID := r1.Group(); groupID > 0 {
		r1.GroupActivated(groupID)
		r2.GroupActivated(groupID)
	}
	assert.True(t, r1.player.IsPlayingNote(60))

	// Event 2: note 61 reaches only the group=2 region.
	event2 := event.NoteOn(61, 127)
	_ = r1.PassEvent(event2, 0)
	fired2 := r2.PassEvent(event2, 0)
	require.True(t, fired2)
	groupID := r2.Group()
	require.Equal(t, uint32(2), groupID)
	r1.GroupActivated(groupID)
	r2.GroupActivated(groupID)

	assert.True(t, r1.player.IsReleasingNote(60))
	assert.True(t, r2.player.IsPlayingNote(61))
}

// TestSustainPedalLatch reproduces the sustain-pedal worked example: a
// note-off under a held pedal does not release the voice until the pedal
// lifts.
func TestSustainPedalLatch(t *testing.T) {
	params := sustainedParams()
	sample := constantStereoSample(1.0, 64)
	r := New(params, sample, 100, 8, nil)

	require.True(t, r.PassEvent(event.NoteOn(60, 100), 0))
	r.PassEvent(event.ControlChange(event.SustainPedalCC, 127), 0)
	r.PassEvent(event.NoteOff(60), 0)

	assert.True(t, r.player.IsPlayingNote(60))
	assert.False(t, r.player.IsReleasingNote(60))

	r.PassEvent(event.ControlChange(event.SustainPedalCC, 0), 0)

	assert.True(t, r.player.IsReleasingNote(60))
}

// TestReleaseTriggerRtDecay reproduces the release-trigger rt_decay worked
// example: one second elapsed since note-on yields a 3dB/s roll-off.
func TestReleaseTriggerRtDecay(t *testing.T) {
	params := sustainedParams()
	params.Trigger = TriggerRelease
	params.RtDecay = 3
	params.PitchKeytrack = 0

	sample := constantStereoSample(1.0, 64)
	r := New(params, sample, 1, 1, nil)

	require.False(t, r.PassEvent(event.NoteOn(60, 127), 0))

	left := make([]float32, 1)
	right := make([]float32, 1)
	r.Process(left, right)

	require.True(t, r.PassEvent(event.NoteOff(60), 0))

	left[0], right[0] = 0, 0
	r.Process(left, right)

	want := math.Pow(10, -3.0/20.0)
	assert.InDelta(t, want, float64(left[0]), 1e-6)
}

// TestOnCCTriggerRtDecay reproduces the release-trigger rt_decay roll-off
// for a region fired via on_locc/on_hicc rather than NoteOn/NoteOff: the
// roll-off must still apply since it is keyed on the region's Trigger, not
// on which event path caused the fire (_examples/original_source's note_on
// matches rt_decay on self.params.trigger regardless of call path).
func TestOnCCTriggerRtDecay(t *testing.T) {
	params := sustainedParams()
	params.Trigger = TriggerRelease
	params.RtDecay = 3
	params.PitchKeytrack = 0
	params.OnCCs = map[int]CCRange{20: {Lo: 64, Hi: 127}}

	sample := constantStereoSample(1.0, 64)
	r := New(params, sample, 1, 1, nil)

	left := make([]float32, 1)
	right := make([]float32, 1)
	r.Process(left, right)

	require.True(t, r.PassEvent(event.ControlChange(20, 100), 0))

	left[0], right[0] = 0, 0
	r.Process(left, right)

	want := math.Pow(10, -3.0/20.0)
	assert.InDelta(t, want, float64(left[0]), 1e-6)
}
