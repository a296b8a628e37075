package sfz

import (
	"strconv"
	"strings"

	"github.com/sonari-audio/engine/sonari"
)

var noteSemitone = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// parseKey accepts either a bare MIDI note number or a note name of the
// form "C3", "F#-1", "Ab9" (letter, optional '#'/'b', octave), matching the
// original instrument-description grammar (original_source/soundfonts/src/
// sfz/parser.rs's parse_key).
func parseKey(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}

	if len(value) < 2 {
		return 0, &sonari.ConfigurationError{Value: value, Reason: "invalid note name"}
	}

	letter := strings.ToUpper(value[:1])[0]
	semitone, ok := noteSemitone[letter]
	if !ok {
		return 0, &sonari.ConfigurationError{Value: value, Reason: "invalid note name"}
	}

	rest := value[1:]
	sign := 0
	switch rest[0] {
	case '#':
		sign = 1
		rest = rest[1:]
	case 'b':
		sign = -1
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil || octave < -1 || octave > 9 {
		return 0, &sonari.ConfigurationError{Value: value, Reason: "invalid note octave"}
	}

	return (octave+1)*12 + semitone + sign, nil
}
