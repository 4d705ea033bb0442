// Package pwm sounds a real piezo buzzer on a GPIO pin through
// periph.io, using the pin's hardware PWM where the host has one and
// periph's software fallback elsewhere.
package pwm

import (
	"fmt"

	"github.com/chirpaudio/chirp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Buzzer drives one GPIO pin as a square-wave tone output at half duty.
// It implements the chirp.Buzzer interface.
type Buzzer struct {
	pin gpio.PinIO
	hz  int
	on  bool
}

var _ chirp.Buzzer = (*Buzzer)(nil)

// Open initializes the periph host drivers and resolves the pin by name:
// a GPIO name like "GPIO13", a number, a header position like "P1_33"
// or an alias. The pin starts silent, driven low.
func Open(name string) (*Buzzer, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("cannot initialize periph host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", name)
	}
	b := &Buzzer{pin: pin}
	if err := b.apply(); err != nil {
		return nil, err
	}
	return b, nil
}

// SetFrequency sets the tone frequency. A tone already sounding moves
// to the new frequency immediately.
func (b *Buzzer) SetFrequency(hz int) error {
	b.hz = hz
	return b.apply()
}

// On starts the square wave at the frequency last set.
func (b *Buzzer) On() error {
	b.on = true
	return b.apply()
}

// Off silences the pin, driving it low.
func (b *Buzzer) Off() error {
	b.on = false
	return b.apply()
}

// Close silences the pin. The Buzzer stays usable; Close exists so
// callers can defer a cleanup alongside the other drivers.
func (b *Buzzer) Close() error {
	return b.Off()
}

// apply reconciles the pin with the tone state: PWM at half duty while
// a positive frequency sounds, otherwise static low.
func (b *Buzzer) apply() error {
	if !b.on || b.hz <= 0 {
		if err := b.pin.Halt(); err != nil {
			return fmt.Errorf("cannot halt pwm on %s: %w", b.pin, err)
		}
		if err := b.pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("cannot drive %s low: %w", b.pin, err)
		}
		return nil
	}
	f := physic.Frequency(b.hz) * physic.Hertz
	if err := b.pin.PWM(gpio.DutyHalf, f); err != nil {
		return fmt.Errorf("cannot start %v pwm on %s: %w", f, b.pin, err)
	}
	return nil
}
