package chirp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedNote is returned for tokens that do not follow the note
// grammar. Test for it with errors.Is; the error names the bad token.
var ErrMalformedNote = errors.New("malformed note")

// Defaults for the Context fields. Four ticks make a beat and the beat
// runs at 120 BPM, so a default four-tick note lasts exactly half a
// second.
const (
	DefaultTicksPerBeat = 4
	DefaultBPM          = 120
	DefaultOctave       = 4
	DefaultDuration     = 4
)

// Context is the sticky state a melody is parsed against: the tempo and
// the octave and duration that tokens omit. ParseNote reads the missing
// parts of a token from the Context and writes back the parts the token
// spells out, so they persist for the tokens that follow.
type Context struct {
	TicksPerBeat int // ticks in one beat
	BPM          int // beats per minute
	Octave       int // octave for tokens that do not name one
	Duration     int // length in ticks for tokens that do not name one
}

// NewContext returns a Context with every field at its default.
func NewContext() Context {
	return Context{
		TicksPerBeat: DefaultTicksPerBeat,
		BPM:          DefaultBPM,
		Octave:       DefaultOctave,
		Duration:     DefaultDuration,
	}
}

// Reset restores every field to its default.
func (c *Context) Reset() {
	*c = NewContext()
}

// NoteDuration returns the wall-clock length of Duration ticks at the
// current tempo. The tempo fields are used as given: a zero tempo
// divides by zero.
func (c *Context) NoteDuration() time.Duration {
	return time.Duration(c.Duration) * time.Minute / time.Duration(c.BPM*c.TicksPerBeat)
}

// Note is one parsed melody event: the frequency to sound and how long
// to sound it. A Frequency of 0 is a rest.
type Note struct {
	Frequency int // hertz
	Duration  time.Duration
}

// Pitches of the middle octave (octave 4) in hertz, indexed by letter -
// 'a'. The sharp table holds 0 where the piano has no black key (b# and
// e#); a flat reads the sharp table one step down, which makes cb and fb
// silent rather than errors.
var (
	naturals = [7]int{440, 494, 262, 294, 330, 349, 392}
	sharps   = [7]int{466, 0, 277, 311, 0, 370, 415}
)

const restIndex = 'r' - 'a'

func malformed(token string) error {
	return fmt.Errorf("%w %q", ErrMalformedNote, token)
}

// ParseNote parses one note token against ctx and returns the note to
// play. The token has the form
//
//	<letter>[accidental][octave][:<duration>]
//
// case-insensitively, where letter is a pitch a..g or r for a rest,
// accidental is # or b, octave is one decimal digit and duration a run
// of digits counting ticks, capped at 24 bits so that converting ticks
// to wall-clock time cannot overflow. An octave or duration named by
// the token is written to ctx before the rest of the token is
// validated, and ctx supplies the values the token omits. A flat is
// legal only where the table has a pitch below the letter: ab does not
// exist, the pitch below a lives in the octave below. Rests ignore
// accidental and octave but still consume them syntactically, so r#,
// r2 and r:8 all rest.
func ParseNote(token string, ctx *Context) (Note, error) {
	note, dur, hasDur := strings.Cut(strings.ToLower(token), ":")
	if hasDur {
		// Segments past the second are ignored.
		dur, _, _ = strings.Cut(dur, ":")
		ticks, err := strconv.ParseUint(dur, 10, 24)
		if err != nil {
			return Note{}, malformed(token)
		}
		ctx.Duration = int(ticks)
	}
	if note == "" {
		return Note{}, malformed(token)
	}
	index := int(note[0]) - 'a'
	if index < 0 || (index > 6 && index != restIndex) {
		return Note{}, malformed(token)
	}
	sharp := false
	switch len(note) {
	case 1: // bare letter, octave and duration from ctx
	case 2: // "c5", "c#" or "db"
		if c := note[1]; c >= '0' && c <= '9' {
			ctx.Octave = int(c - '0')
		} else {
			sharp = true
			if c == 'b' && index <= 6 {
				index--
			} else if c != '#' {
				return Note{}, malformed(token)
			}
		}
	case 3: // "c#5" or "db5"
		if c := note[2]; c >= '0' && c <= '9' {
			ctx.Octave = int(c - '0')
		} else {
			return Note{}, malformed(token)
		}
		sharp = true
		if c := note[1]; c == 'b' && index <= 6 {
			index--
		} else if c != '#' {
			return Note{}, malformed(token)
		}
	default:
		return Note{}, malformed(token)
	}
	if index < 0 { // flat of a
		return Note{}, malformed(token)
	}
	frequency := 0
	if index <= 6 {
		base := naturals[index]
		if sharp {
			base = sharps[index]
		}
		if shift := ctx.Octave - 4; shift > 0 {
			frequency = base << shift
		} else {
			frequency = base >> -shift
		}
	}
	return Note{Frequency: frequency, Duration: ctx.NoteDuration()}, nil
}

// ParseMelody parses tokens in order against ctx and returns the notes
// to play. The first malformed token aborts the parse; ctx keeps the
// mutations made up to that point.
func ParseMelody(ctx *Context, tokens ...string) ([]Note, error) {
	notes := make([]Note, 0, len(tokens))
	for _, token := range tokens {
		note, err := ParseNote(token, ctx)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}
