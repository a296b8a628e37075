// Package region implements one instrument-description rule: an event
// predicate (key/velocity/CC/random-draw range) bound to a single sample
// player and its trigger/group bookkeeping.
//
// Grounded on original_source/src/sfz/engine.rs's Region (event dispatch,
// trigger kinds, group immunity, sustain-pedal latch) and on sid_player.go's
// per-channel trigger bookkeeping for the Go shape.
package region

import (
	"math"

	"github.com/sonari-audio/engine/adsr"
	"github.com/sonari-audio/engine/event"
	"github.com/sonari-audio/engine/player"
)

type noteVelocity struct {
	note     int
	velocity int
	valid    bool
}

// Region is one rule: a set of activation predicates, trigger/group
// configuration, and the Player it drives when it fires.
type Region struct {
	params Params
	player *player.Player

	sampleRate float64

	lastNoteOn      noteVelocity
	otherHeldNotes  map[int]struct{}
	pendingRelease  map[int]struct{}
	sustainLatched  bool
	timeSinceNoteOn float64
	groupImmune     bool
}

// New builds a Region over already-decoded, unpadded sample data (player.New
// adds the padding). The
// envelope table is built once from params.Ampeg and shared by every voice
// the region spawns.
func New(params Params, sampleData []float32, sampleRate float64, maxBlockLength int, onAnomaly player.AnomalyFunc) *Region {
	envelope := adsr.Build(params.Ampeg, sampleRate, maxBlockLength)
	nativeFrequency := NoteFrequency(params.PitchKeycenter)
	return &Region{
		params:         params,
		player:         player.New(sampleData, nativeFrequency, maxBlockLength, envelope, onAnomaly),
		sampleRate:     sampleRate,
		otherHeldNotes: make(map[int]struct{}),
		pendingRelease: make(map[int]struct{}),
	}
}

// Group returns the region's group ID and arms the one-shot immunity flag,
// so that the group broadcast this event triggers does not immediately
// silence the voice this region just started (spec.md §4.3).
func (r *Region) Group() uint32 {
	r.groupImmune = true
	return r.params.Group
}

// OffBy returns the region's off_by group ID.
func (r *Region) OffBy() uint32 {
	return r.params.OffBy
}

// GroupActivated silences this region's voices if groupID matches its group
// or off_by, unless this region is immune (it just fired for this event).
func (r *Region) GroupActivated(groupID uint32) {
	if r.groupImmune {
		return
	}
	if groupID > 0 && (groupID == r.params.Group || groupID == r.params.OffBy) {
		r.player.AllNotesOff()
	}
}

// AllNotesOff moves every sounding voice into its release segment.
func (r *Region) AllNotesOff() {
	r.player.AllNotesOff()
}

// IsPlaying reports whether any voice is sounding or releasing.
func (r *Region) IsPlaying() bool {
	return r.player.IsPlaying()
}

// IsPlayingNote reports whether a non-releasing voice for note exists.
func (r *Region) IsPlayingNote(note int) bool {
	return r.player.IsPlayingNote(note)
}

// IsReleasingNote reports whether a releasing voice for note exists.
func (r *Region) IsReleasingNote(note int) bool {
	return r.player.IsReleasingNote(note)
}

// PassEvent evaluates one event against this region's predicates and
// trigger kind, mutating bookkeeping state and firing a voice when
// selected. It returns true iff the event caused a note-on-like activation
// (the Engine uses this to decide which groups to broadcast).
func (r *Region) PassEvent(ev event.Event, randomDraw float64) bool {
	r.groupImmune = false

	switch ev.Kind {
	case event.KindNoteOn:
		return r.noteOn(ev.Note, ev.Velocity, randomDraw)
	case event.KindNoteOff:
		return r.noteOff(ev.Note)
	case event.KindControlChange:
		return r.controlChange(ev.Controller, ev.Value)
	}
	return false
}

func (r *Region) noteOn(note, velocity int, randomDraw float64) bool {
	if r.player.IsPlayingNote(note) {
		return false
	}
	if !r.params.KeyRange.Contains(note) {
		r.otherHeldNotes[note] = struct{}{}
		return false
	}
	if !r.params.VelRange.Contains(velocity) {
		return false
	}
	if !r.params.RandomRange.Contains(randomDraw) {
		return false
	}

	switch r.params.Trigger {
	case TriggerAttack:
		return r.fire(note, velocity, false)
	case TriggerRelease, TriggerReleaseKey:
		r.lastNoteOn = noteVelocity{note: note, velocity: velocity, valid: true}
		return false
	case TriggerFirst:
		if len(r.otherHeldNotes) != 0 {
			return false
		}
		return r.fire(note, velocity, false)
	case TriggerLegato:
		if len(r.otherHeldNotes) == 0 {
			return false
		}
		return r.fire(note, velocity, false)
	}
	return false
}

func (r *Region) noteOff(note int) bool {
	if !r.params.KeyRange.Contains(note) {
		delete(r.otherHeldNotes, note)
		return false
	}

	switch r.params.Trigger {
	case TriggerRelease, TriggerReleaseKey:
		if !r.lastNoteOn.valid {
			return false
		}
		stored := r.lastNoteOn
		r.lastNoteOn.valid = false
		return r.fire(stored.note, stored.velocity, true)
	default:
		if r.sustainLatched {
			r.pendingRelease[note] = struct{}{}
		} else {
			r.player.NoteOff(note)
		}
		return false
	}
}

func (r *Region) controlChange(controller, value int) bool {
	fired := false

	if controller == event.SustainPedalCC {
		wasLatched := r.sustainLatched
		r.sustainLatched = value >= 64
		if wasLatched && !r.sustainLatched {
			switch r.params.Trigger {
			case TriggerRelease:
				if r.lastNoteOn.valid {
					stored := r.lastNoteOn
					r.lastNoteOn.valid = false
					if r.fire(stored.note, stored.velocity, true) {
						fired = true
					}
				}
			default:
				for note := range r.pendingRelease {
					r.player.NoteOff(note)
					delete(r.pendingRelease, note)
				}
			}
		}
	}

	rtApplies := r.params.Trigger == TriggerRelease || r.params.Trigger == TriggerReleaseKey
	for cc, rng := range r.params.OnCCs {
		if cc == controller && rng.Contains(value) {
			if r.fire(r.params.PitchKeycenter, 127, rtApplies) {
				fired = true
			}
		}
	}

	return fired
}

// fire computes amplitude and frequency for (note, velocity) and starts a
// voice. rtApplies selects whether the release-trigger dB/s roll-off since
// the last note-on is added to the gain (spec.md §4.3.1 steps 6-11).
func (r *Region) fire(note, velocity int, rtApplies bool) bool {
	vel := velocity
	if r.params.AmpVeltrack < 0 {
		vel = 127 - velocity
	}
	ampFromVelDB := velocityToDB(vel) * math.Abs(r.params.AmpVeltrack)

	rtDB := 0.0
	if rtApplies {
		rtDB = r.timeSinceNoteOn * (-r.params.RtDecay)
	}

	gain := toLinear(r.params.Volume + ampFromVelDB + rtDB)
	frequency := r.frequency(note)

	r.timeSinceNoteOn = 0
	r.player.NoteOn(note, frequency, float32(gain))
	return true
}

func (r *Region) frequency(note int) float64 {
	native := NoteFrequency(r.params.PitchKeycenter)
	target := NoteFrequency(note)
	return native * math.Pow(target/native, r.params.PitchKeytrack) * math.Pow(2, r.params.Tune/12)
}

// Process advances the region's wall clock (consumed by release-trigger
// rt_decay) and, if any voice is sounding, delegates to the Player. It does
// not zero outLeft/outRight; the Engine owns that.
func (r *Region) Process(outLeft, outRight []float32) {
	r.timeSinceNoteOn += float64(len(outLeft)) / r.sampleRate
	if r.player.IsPlaying() {
		r.player.Process(outLeft, outRight)
	}
}
