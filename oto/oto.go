// Package oto plays tones through the computer's sound card, emulating
// a piezo buzzer with a square-wave voice. It is the driver desktop
// builds use when no buzzer hardware is around.
package oto

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/chirpaudio/chirp"
	"github.com/chirpaudio/chirp/synth"
	"github.com/ebitengine/oto/v3"
)

// Context owns the process-wide sound card connection. The connection
// cannot be closed, only suspended; voices come and go through Buzzer.
type Context struct {
	context    *oto.Context
	sampleRate int
}

// NewContext opens the sound card at the given sample rate, or at
// synth.DefaultSampleRate when rate is zero, and waits until the device
// is ready to play.
func NewContext(rate int) (*Context, error) {
	if rate <= 0 {
		rate = synth.DefaultSampleRate
	}
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{context: context, sampleRate: rate}, nil
}

// Suspend pauses the audio device; Resume undoes it.
func (c *Context) Suspend() error { return c.context.Suspend() }

// Resume restarts a suspended audio device.
func (c *Context) Resume() error { return c.context.Resume() }

// Buzzer starts a new square-wave voice on the sound card. The voice is
// silent until a player drives it; Close frees it.
func (c *Context) Buzzer() *Buzzer {
	b := &Buzzer{osc: synth.NewSquare(c.sampleRate)}
	b.player = c.context.NewPlayer(b)
	b.player.Play()
	return b
}

// Buzzer is a chirp.Buzzer voiced by the sound card. The tone methods
// may be called from one goroutine while the audio driver pulls samples
// concurrently.
type Buzzer struct {
	mu      sync.Mutex
	osc     *synth.Square
	player  *oto.Player
	scratch []float32
}

var _ chirp.Buzzer = (*Buzzer)(nil)

func (b *Buzzer) SetFrequency(hz int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.osc.SetFrequency(hz)
}

func (b *Buzzer) On() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.osc.On()
}

func (b *Buzzer) Off() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.osc.Off()
}

// Read supplies the device with little-endian float32 mono frames. The
// audio driver calls it; users never do.
func (b *Buzzer) Read(p []byte) (int, error) {
	frames := len(p) / 4
	b.mu.Lock()
	if cap(b.scratch) < frames {
		b.scratch = make([]float32, frames)
	}
	samples := b.scratch[:frames]
	b.osc.Render(samples)
	b.mu.Unlock()
	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	return frames * 4, nil
}

// Close silences the voice and frees its device player.
func (b *Buzzer) Close() error {
	b.Off()
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
