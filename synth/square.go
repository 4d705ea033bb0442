// Package synth renders melodies in software: a square-wave oscillator
// stands in for the buzzer, and melodies become mono sample buffers for
// the sound card or for audio files.
package synth

// DefaultSampleRate is used wherever a sample rate is left zero.
const DefaultSampleRate = 44100

// Square is a monophonic square-wave oscillator, the software stand-in
// for a piezo buzzer. It implements the chirp.Buzzer interface and
// never fails. A Square is not safe for concurrent use; the realtime
// drivers wrap it in their own locking.
type Square struct {
	SampleRate int     // samples per second
	Amplitude  float32 // peak sample value

	freq  int
	on    bool
	phase float64
}

// NewSquare returns a silent oscillator rendering at the given rate, or
// at DefaultSampleRate when rate is zero.
func NewSquare(rate int) *Square {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Square{SampleRate: rate, Amplitude: 0.25}
}

func (s *Square) SetFrequency(hz int) error {
	s.freq = hz
	return nil
}

func (s *Square) On() error {
	s.on = true
	return nil
}

func (s *Square) Off() error {
	s.on = false
	return nil
}

// Render fills dst with the next len(dst) samples: a 50% duty square at
// the frequency last set, or silence when the oscillator is off. The
// phase carries over between calls.
func (s *Square) Render(dst []float32) {
	if !s.on || s.freq <= 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	step := float64(s.freq) / float64(s.SampleRate)
	for i := range dst {
		if s.phase < 0.5 {
			dst[i] = s.Amplitude
		} else {
			dst[i] = -s.Amplitude
		}
		s.phase += step
		if s.phase >= 1 {
			s.phase -= 1
		}
	}
}
