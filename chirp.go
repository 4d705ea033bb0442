// Package chirp parses piezo-buzzer melody notation and plays it through
// pluggable tone devices.
//
// A melody is a sequence of note tokens of the form
//
//	<letter>[accidental][octave][:<duration>]
//
// for example "c", "c#4", "eb:8" or "r:2". The letter is a pitch a..g or r
// for a rest. Parsing is stateful: an explicit octave or duration sticks
// for the tokens that follow it, so "c5 d e" plays three notes in octave
// 5. ParseNote documents the exact grammar; Context carries the sticky
// state and the tempo.
//
// Playback goes through the Buzzer interface, a monophonic square-wave
// device in the spirit of a piezo disc on a GPIO pin. The pwm subpackage
// drives a real one; the oto subpackage emulates one on the sound card,
// the midi subpackage forwards tones to a MIDI output port and synth
// renders melodies to sample buffers offline.
package chirp

import "time"

const (
	// Articulation is the silent gap inserted after every timed note, so
	// that repeated pitches are heard as separate notes.
	Articulation = 10 * time.Millisecond

	// MinHold is how long a note sounds when its notated duration is too
	// short to survive the articulation gap.
	MinHold = 10 * time.Millisecond

	// Sustain, passed to Pitch as the duration, keeps the tone sounding
	// until a later call silences or replaces it.
	Sustain time.Duration = -1
)

// Buzzer is a monophonic tone device: a square wave that is either
// sounding or silent at the frequency last set. Setting the frequency
// does not start the tone and turning the tone off does not forget the
// frequency. Implementations are not safe for concurrent use unless
// documented otherwise.
type Buzzer interface {
	// SetFrequency sets the tone frequency in hertz. Implementations
	// may round to the nearest frequency they can produce.
	SetFrequency(hz int) error
	// On starts the tone at the frequency last set.
	On() error
	// Off silences the device.
	Off() error
}

// Tone drives b by the tone rule: a positive frequency is set and the
// output turned on, zero or negative silences the output.
func Tone(b Buzzer, hz int) error {
	if hz <= 0 {
		return b.Off()
	}
	if err := b.SetFrequency(hz); err != nil {
		return err
	}
	return b.On()
}

// Hold returns how long a note of duration d sounds before the
// articulation gap cuts it off. Durations shorter than the gap still
// sound for MinHold; sustained pitches (negative d) have no timed hold
// and return 0.
func Hold(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	hold := d - Articulation
	if hold < 0 {
		hold = MinHold
	}
	return hold
}
