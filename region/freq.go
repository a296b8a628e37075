package region

import "math"

// NoteFrequency returns the equal-temperament frequency of a MIDI note
// number, using A4 (note 69) = 440Hz as the reference pitch.
func NoteFrequency(note int) float64 {
	return 440.0 * math.Pow(2.0, float64(note-69)/12.0)
}
