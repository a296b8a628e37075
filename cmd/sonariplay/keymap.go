package main

import "github.com/gdamore/tcell/v2"

// pianoKeys maps a QWERTY "keyboard piano" layout onto MIDI note numbers,
// two piano-key rows starting at middle C (60): the bottom row gives the
// white keys, the row above gives the interleaved black keys.
var pianoKeys = map[rune]int{
	'z': 60, 'x': 62, 'c': 64, 'v': 65, 'b': 67, 'n': 69, 'm': 71,
	',': 72, '.': 74, '/': 76,
	's': 61, 'd': 63, 'g': 66, 'h': 68, 'j': 70,
	'l': 73, ';': 75,
}

// sustainKey toggles the sustain pedal (CC64) latch instead of a note.
const sustainKey = tcell.KeyTab
