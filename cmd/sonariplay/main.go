// Command sonariplay is a terminal keyboard-piano demo host for the sample
// playback engine: it parses an instrument description, opens a realtime
// audio output, and maps a QWERTY layout onto note-on/note-off events typed
// at a tcell screen (spec.md §4.8).
//
// Grounded on cmd/vi-fighter/main.go for the tcell screen/event-channel/
// ticker wiring, and on terminal_host.go/terminal_io.go for the terminal
// raw-mode lifecycle idiom (defer screen.Fini(), a dedicated stop channel).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/sonari-audio/engine/audioout"
	"github.com/sonari-audio/engine/engine"
	"github.com/sonari-audio/engine/event"
	"github.com/sonari-audio/engine/sonari/logadapter"
)

// noteOffDelay is how long a virtual key stays "held" after a keypress.
// A terminal keyboard reports key-down only, never key-up, so there is no
// way to detect when the user releases a key; auto-release after a fixed
// duration stands in for that missing signal.
const noteOffDelay = 350 * time.Millisecond

func main() {
	cfg := loadConfig()

	logger := logrus.New()
	if cfg.debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	sonariLogger := logadapter.New(logger)

	eng, err := engine.New(cfg.instrumentPath, float64(cfg.sampleRate), cfg.blockLength, sonariLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sonariplay: %v\n", err)
		os.Exit(1)
	}

	out, err := audioout.New(cfg.sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sonariplay: failed to open audio output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.SetEngine(eng)
	out.Start()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sonariplay: failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "sonariplay: failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	drawHelp(screen)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	sustained := false

	for ev := range eventChan {
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return
		case sustainKey:
			sustained = !sustained
			value := 0
			if sustained {
				value = 127
			}
			eng.Event(event.ControlChange(event.SustainPedalCC, value))
			continue
		}

		r := key.Rune()
		note, known := pianoKeys[r]
		if !known {
			continue
		}

		eng.Event(event.NoteOn(note, 100))
		go func(n int) {
			time.Sleep(noteOffDelay)
			eng.Event(event.NoteOff(n))
		}(note)
	}
}

func drawHelp(screen tcell.Screen) {
	msg := "sonariplay - zxcvbnm,./ = white keys, sdghj/l; = black keys, Tab = sustain, Esc = quit"
	for i, r := range msg {
		screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}
