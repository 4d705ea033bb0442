package synth

import (
	"time"

	"github.com/chirpaudio/chirp"
)

var _ chirp.Buzzer = (*Square)(nil)

// Renderer turns melodies into sample buffers offline, with the same
// parsing and timing rules as chirp.Player: every note sounds for its
// duration less the articulation gap, and the gap renders as silence.
// The zero value renders at DefaultSampleRate and the default tempo.
type Renderer struct {
	SampleRate int // samples per second, DefaultSampleRate when zero
	Ticks      int // ticks per beat, the chirp default when zero
	BPM        int // beats per minute, the chirp default when zero
}

// Render renders the melody to mono samples, octave and duration
// starting from their defaults as in a Play call.
func (r Renderer) Render(notes ...string) ([]float32, error) {
	ctx := chirp.NewContext()
	if r.Ticks > 0 {
		ctx.TicksPerBeat = r.Ticks
	}
	if r.BPM > 0 {
		ctx.BPM = r.BPM
	}
	parsed, err := chirp.ParseMelody(&ctx, notes...)
	if err != nil {
		return nil, err
	}
	osc := NewSquare(r.SampleRate)
	var buf []float32
	for _, note := range parsed {
		chirp.Tone(osc, note.Frequency)
		buf = render(osc, buf, chirp.Hold(note.Duration))
		chirp.Tone(osc, 0)
		buf = render(osc, buf, chirp.Articulation)
	}
	return buf, nil
}

// render appends d worth of oscillator output to buf.
func render(osc *Square, buf []float32, d time.Duration) []float32 {
	count := int(time.Duration(osc.SampleRate) * d / time.Second)
	start := len(buf)
	buf = append(buf, make([]float32, count)...)
	osc.Render(buf[start:])
	return buf
}
