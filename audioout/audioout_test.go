package audioout

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonari-audio/engine/engine"
	"github.com/sonari-audio/engine/event"
)

func writeMonoWAV(t *testing.T, path string, sampleRate uint32, samples []int16) {
	t.Helper()

	var pcm bytes.Buffer
	for _, s := range samples {
		require.NoError(t, binary.Write(&pcm, binary.LittleEndian, s))
	}
	dataSize := uint32(pcm.Len())

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	byteRate := sampleRate * 1 * 16 / 8
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(pcm.Bytes())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// newTestOutput builds an Output with its scratch buffers but no real oto
// context, exercising Read's mixing/interleaving logic in isolation; opening
// an actual audio device is not available in a headless test environment.
func newTestOutput(frames int) *Output {
	return &Output{
		left:        make([]float32, frames),
		right:       make([]float32, frames),
		interleaved: make([]float32, frames*2),
	}
}

func TestReadEmitsSilenceWithNoEngineInstalled(t *testing.T) {
	o := newTestOutput(bufferFrames)
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = 0xFF
	}

	n, err := o.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}

func TestReadInterleavesEngineOutput(t *testing.T) {
	dir := t.TempDir()
	writeMonoWAV(t, filepath.Join(dir, "tone.wav"), 1000, []int16{32767, 32767, 32767, 32767})
	descriptionPath := filepath.Join(dir, "instrument.sfz")
	require.NoError(t, os.WriteFile(descriptionPath,
		[]byte("<region> sample=tone.wav key=60 ampeg_sustain=100\n"), 0o644))

	e, err := engine.New(descriptionPath, 1000, 4, nil)
	require.NoError(t, err)

	o := newTestOutput(bufferFrames)
	o.SetEngine(e)

	e.EventWithRandom(event.NoteOn(60, 127), 0)

	frames := 4
	buf := make([]byte, frames*8)
	n, err := o.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	assert.NotEqual(t, []byte{0, 0, 0, 0}, buf[0:4])
}
