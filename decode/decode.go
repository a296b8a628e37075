// Package decode loads a sample file into the interleaved stereo float32
// buffer the player package mixes from.
//
// Grounded on gopxl/beep's wav decoder (the pack's only audio-file decode
// library, used for playback in lixenwraith-vi-fighter) and on
// original_source/soundfonts/src/sample.rs's Sample::new for the flattening
// contract player.New expects.
package decode

import (
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/sonari-audio/engine/sonari"
)

// ResampleQuality mirrors the quality argument beep.Resample accepts; 4 is
// beep's own recommended default for offline (non-realtime) resampling.
const ResampleQuality = 4

// Sample is a fully decoded, interleaved stereo sample: exactly FrameCount
// frames, unpadded. player.New performs its own padding, since it alone
// knows the block size it will be asked to fill (spec.md §9).
type Sample struct {
	Data       []float32
	FrameCount int
}

// File decodes path at engineSampleRate, resampling if the file's native
// rate differs.
func File(path string, engineSampleRate float64) (Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sample{}, &sonari.ResourceError{Path: path, Reason: "cannot open sample file", Err: err}
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return Sample{}, &sonari.ResourceError{Path: path, Reason: "cannot decode WAV", Err: err}
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if float64(format.SampleRate) != engineSampleRate {
		source = beep.Resample(ResampleQuality, format.SampleRate, beep.SampleRate(engineSampleRate), streamer)
	}

	frames := make([][2]float64, 0, streamer.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := source.Stream(buf)
		if n > 0 {
			frames = append(frames, buf[:n]...)
		}
		if !ok {
			break
		}
	}

	data := make([]float32, len(frames)*2)
	for i, frame := range frames {
		data[2*i] = float32(frame[0])
		data[2*i+1] = float32(frame[1])
	}

	return Sample{Data: data, FrameCount: len(frames)}, nil
}
