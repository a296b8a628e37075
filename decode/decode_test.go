package decode

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonari-audio/engine/sonari"
)

// writeMonoWAV writes a minimal 16-bit PCM mono WAV file at the given
// sample rate containing samples (already scaled to int16 range).
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
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	byteRate := sampleRate * 1 * 16 / 8
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(pcm.Bytes())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestFileDecodesAtNativeSampleRate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeMonoWAV(t, path, 1000, []int16{0, 16383, 32767, -32768})

	sample, err := File(path, 1000)
	require.NoError(t, err)

	assert.Equal(t, 4, sample.FrameCount)
	assert.Len(t, sample.Data, 8)
	assert.InDelta(t, 0.0, sample.Data[0], 1e-3)
	assert.InDelta(t, 1.0, sample.Data[4], 1e-3)
}

func TestFileMissingReturnsResourceError(t *testing.T) {
	_, err := File("/nonexistent/path/sample.wav", 44100)
	require.Error(t, err)
	var resErr *sonari.ResourceError
	assert.ErrorAs(t, err, &resErr)
}
