// Package midi drives a MIDI output port as a chirp tone device. Tones
// become note-on and note-off messages on one channel, with the
// frequency rounded to the nearest equal-tempered key, so a melody can
// sound through a hardware or software synthesizer instead of a buzzer.
package midi

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chirpaudio/chirp"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register the MIDI driver
)

// Ports returns the names of the MIDI output ports on this machine.
func Ports() []string {
	var names []string
	for _, port := range midi.GetOutPorts() {
		names = append(names, port.String())
	}
	return names
}

// CloseDriver releases the MIDI driver. Call it once when the program
// is done with MIDI.
func CloseDriver() {
	midi.CloseDriver()
}

// Buzzer sounds tones as MIDI notes on one output port. It implements
// the chirp.Buzzer interface.
type Buzzer struct {
	out      drivers.Out
	send     func(midi.Message) error
	channel  uint8
	velocity uint8
	key      uint8
	on       bool
}

var _ chirp.Buzzer = (*Buzzer)(nil)

// Open connects to the first output port whose name contains name,
// case-insensitively, or to the first port of all when name is empty.
func Open(name string) (*Buzzer, error) {
	ports := midi.GetOutPorts()
	if len(ports) == 0 {
		return nil, errors.New("no MIDI output ports found")
	}
	var out drivers.Out
	if name == "" {
		out = ports[0]
	} else {
		for i, port := range ports {
			if strings.Contains(strings.ToLower(port.String()), strings.ToLower(name)) {
				out = ports[i]
				break
			}
		}
		if out == nil {
			return nil, fmt.Errorf("no MIDI output port matching %q (have %v)", name, Ports())
		}
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("cannot open MIDI output %q: %w", out.String(), err)
	}
	return &Buzzer{out: out, send: send, velocity: 100}, nil
}

// Key returns the MIDI key nearest to the frequency, clamped to the
// 0..127 key range. A4 at 440 Hz is key 69.
func Key(hz int) uint8 {
	if hz <= 0 {
		return 0
	}
	key := int(math.Round(69 + 12*math.Log2(float64(hz)/440)))
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return uint8(key)
}

// SetFrequency retunes the buzzer. A note already sounding moves to the
// new key immediately.
func (b *Buzzer) SetFrequency(hz int) error {
	key := Key(hz)
	if b.on && key != b.key {
		if err := b.send(midi.NoteOff(b.channel, b.key)); err != nil {
			return fmt.Errorf("cannot send note off: %w", err)
		}
		b.key = key
		if err := b.send(midi.NoteOn(b.channel, b.key, b.velocity)); err != nil {
			return fmt.Errorf("cannot send note on: %w", err)
		}
		return nil
	}
	b.key = key
	return nil
}

// On sounds the key the frequency last set mapped to.
func (b *Buzzer) On() error {
	if b.on {
		return nil
	}
	b.on = true
	if err := b.send(midi.NoteOn(b.channel, b.key, b.velocity)); err != nil {
		return fmt.Errorf("cannot send note on: %w", err)
	}
	return nil
}

// Off releases the sounding note.
func (b *Buzzer) Off() error {
	if !b.on {
		return nil
	}
	b.on = false
	if err := b.send(midi.NoteOff(b.channel, b.key)); err != nil {
		return fmt.Errorf("cannot send note off: %w", err)
	}
	return nil
}

// Close releases the sounding note and closes the port.
func (b *Buzzer) Close() error {
	if err := b.Off(); err != nil {
		return err
	}
	return b.out.Close()
}
