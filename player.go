package chirp

import (
	"context"
	"sync/atomic"
	"time"
)

// Player plays melodies through one Buzzer, bound at construction for
// the Player's whole life. The tempo set with SetTempo persists across
// calls; the octave and duration state starts from the defaults on
// every Play.
//
// A Player is single-voice and single-caller: do not run two plays on
// the same Player at once. Stop may be called from any goroutine.
type Player struct {
	buzzer  Buzzer
	context Context
	playing atomic.Bool
}

// NewPlayer returns a Player emitting through b at the default tempo of
// four ticks to a 120 BPM beat.
func NewPlayer(b Buzzer) *Player {
	return &Player{buzzer: b, context: NewContext()}
}

// SetTempo sets how many ticks make a beat and how many beats fit in a
// minute. The values are taken as given; validating them is the
// caller's business.
func (p *Player) SetTempo(ticks, bpm int) {
	p.context.TicksPerBeat = ticks
	p.context.BPM = bpm
}

// Tempo returns the current ticks per beat and beats per minute.
func (p *Player) Tempo() (ticks, bpm int) {
	return p.context.TicksPerBeat, p.context.BPM
}

// Reset restores the default tempo, octave and duration. It does not
// touch the buzzer or a playback in progress.
func (p *Player) Reset() {
	p.context.Reset()
}

// Play plays the notes in order and blocks until the melody has
// sounded. The octave and duration state starts from the defaults; the
// tempo is whatever SetTempo last set. The first malformed token stops
// playback with an error, after the notes before it have already
// sounded. Stop cannot interrupt Play; use PlayContext for playback
// that needs interrupting.
func (p *Player) Play(notes ...string) error {
	return p.playNotes(notes, sleepWait, false)
}

// PlayContext plays like Play but can be interrupted: Stop ends the
// melody at the next note boundary without error, and cancelling ctx
// silences the buzzer mid-note and returns the context's error.
// Playing reports true until the call returns.
func (p *Player) PlayContext(ctx context.Context, notes ...string) error {
	p.playing.Store(true)
	defer p.playing.Store(false)
	return p.playNotes(notes, contextWait(ctx), true)
}

// Pitch sounds a frequency for the duration d and blocks until the note
// and its trailing articulation gap have elapsed. Zero or negative
// frequency is silence, so Pitch(0, d) rests for d. With a negative
// duration (see Sustain) the tone is left sounding and Pitch returns at
// once; a later Pitch or Stop call replaces or silences it.
func (p *Player) Pitch(hz int, d time.Duration) error {
	return p.pitch(hz, d, sleepWait)
}

// PitchContext is Pitch with the waits bounded by ctx: cancelling ctx
// silences the buzzer and returns the context's error.
func (p *Player) PitchContext(ctx context.Context, hz int, d time.Duration) error {
	return p.pitch(hz, d, contextWait(ctx))
}

// Stop makes the PlayContext call in progress end at the next note
// boundary; the note already sounding finishes first. Stop does not
// touch blocking Play calls and is a no-op when nothing plays.
func (p *Player) Stop() {
	p.playing.Store(false)
}

// Playing reports whether a PlayContext call is in progress.
func (p *Player) Playing() bool {
	return p.playing.Load()
}

// waitFunc blocks for the given duration. A non-nil error aborted the
// wait early.
type waitFunc func(time.Duration) error

func sleepWait(d time.Duration) error {
	time.Sleep(d)
	return nil
}

func contextWait(ctx context.Context) waitFunc {
	return func(d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

// playNotes is the one melody loop behind Play and PlayContext,
// differing only in the wait and in whether the playing flag is honored
// at note boundaries.
func (p *Player) playNotes(notes []string, wait waitFunc, stoppable bool) error {
	p.context.Octave = DefaultOctave
	p.context.Duration = DefaultDuration
	for _, token := range notes {
		if stoppable && !p.playing.Load() {
			break
		}
		note, err := ParseNote(token, &p.context)
		if err != nil {
			return err
		}
		if err := p.pitch(note.Frequency, note.Duration, wait); err != nil {
			return err
		}
	}
	return nil
}

// pitch emits one tone: sound, hold, silence, articulation gap. A
// negative duration skips everything after the sound, leaving the tone
// latched on.
func (p *Player) pitch(hz int, d time.Duration, wait waitFunc) error {
	if err := Tone(p.buzzer, hz); err != nil {
		return err
	}
	if d < 0 {
		return nil
	}
	if err := wait(Hold(d)); err != nil {
		Tone(p.buzzer, 0)
		return err
	}
	if err := Tone(p.buzzer, 0); err != nil {
		return err
	}
	return wait(Articulation)
}
