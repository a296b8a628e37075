// Package audioout drives a realtime oto/v3 output stream from an
// *engine.Engine, hot-swappable without stopping playback.
//
// Grounded on audio_backend_oto.go's OtoPlayer: the same
// atomic.Pointer[T]-guarded Read callback (lock-free on the hot path, a
// mutex only around setup/control), the same pre-allocated scratch buffer
// grown lazily, adapted from one mono SoundChip ring-buffer source to one
// stereo *engine.Engine block-render source.
package audioout

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/sonari-audio/engine/engine"
)

// bufferFrames is the initial size, in stereo frames, of the left/right
// scratch slices; Read always asks the engine for exactly as many frames as
// the host requested, and reallocates the scratch slices to that size only
// when a request exceeds their capacity.
const bufferFrames = 1024

// Output owns an oto.Context/oto.Player pair and the *engine.Engine
// currently feeding it. SetEngine swaps the engine pointer atomically, so a
// hot-reloaded instrument can replace the old one without a glitch beyond
// whatever cross-fade the caller arranges via Engine.FadeOut.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
	engine atomic.Pointer[engine.Engine]

	left, right []float32
	interleaved []float32

	mu      sync.Mutex
	started bool
}

// New opens an oto context at sampleRate for 2-channel float32LE output.
func New(sampleRate int) (*Output, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferFrames,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	out := &Output{
		ctx:         ctx,
		left:        make([]float32, bufferFrames),
		right:       make([]float32, bufferFrames),
		interleaved: make([]float32, bufferFrames*2),
	}
	out.player = ctx.NewPlayer(out)
	return out, nil
}

// SetEngine atomically installs e as the source Read pulls from. Passing
// nil silences output (Read then emits digital silence).
func (o *Output) SetEngine(e *engine.Engine) {
	o.engine.Store(e)
}

// Read implements io.Reader for oto.Player: it renders exactly len(p)/8
// stereo float32 frames from the currently installed engine (8 bytes per
// frame: two channels of 4-byte float32) and interleaves them into p.
func (o *Output) Read(p []byte) (int, error) {
	e := o.engine.Load()
	if e == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	frames := len(p) / 8
	if cap(o.left) < frames {
		o.left = make([]float32, frames)
		o.right = make([]float32, frames)
		o.interleaved = make([]float32, frames*2)
	}
	left := o.left[:frames]
	right := o.right[:frames]
	interleaved := o.interleaved[:frames*2]

	e.Process(left, right)

	for i := 0; i < frames; i++ {
		interleaved[2*i] = left[i]
		interleaved[2*i+1] = right[i]
	}

	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&interleaved[0]))[:len(p)])
	return len(p), nil
}

// Start begins playback. Idempotent.
func (o *Output) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.started {
		o.player.Play()
		o.started = true
	}
}

// Stop halts playback without releasing the underlying context. Idempotent.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		o.player.Pause()
		o.started = false
	}
}

// Close stops playback and closes the player; the oto context stays open.
func (o *Output) Close() error {
	o.Stop()
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.player.Close()
}
