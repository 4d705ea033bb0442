package chirp_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/chirpaudio/chirp"
)

// fakeBuzzer records the calls a driver would receive.
type fakeBuzzer struct {
	mu    sync.Mutex
	calls []string
	fail  error // when set, every call returns it
}

func (f *fakeBuzzer) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeBuzzer) SetFrequency(hz int) error { return f.record(fmt.Sprintf("freq %d", hz)) }
func (f *fakeBuzzer) On() error                 { return f.record("on") }
func (f *fakeBuzzer) Off() error                { return f.record("off") }

func (f *fakeBuzzer) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBuzzer) has(call string) bool {
	for _, c := range f.recorded() {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeBuzzer) count(call string) int {
	n := 0
	for _, c := range f.recorded() {
		if c == call {
			n++
		}
	}
	return n
}

func TestPlayerPlay(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	p.SetTempo(4, 6000) // 10ms notes keep the test fast
	if err := p.Play("c", "d", "r"); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	want := []string{
		"freq 262", "on", "off", // c
		"freq 294", "on", "off", // d
		"off", "off",            // r rests through the tone rule
	}
	if got := b.recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("buzzer calls %v, want %v", got, want)
	}
}

func TestPlayerPlayResetsOctaveAndDuration(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	p.SetTempo(4, 6000)
	if err := p.Play("c5:1"); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if !b.has("freq 524") {
		t.Fatalf("c5 did not sound at 524 Hz: calls %v", b.recorded())
	}
	b.calls = nil
	if err := p.Play("c"); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	if got := b.recorded()[0]; got != "freq 262" {
		t.Errorf("first call of the second melody %q, want \"freq 262\": octave did not reset", got)
	}
}

func TestPlayerPlayMalformed(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	p.SetTempo(4, 6000)
	err := p.Play("c", "h", "d")
	if !errors.Is(err, chirp.ErrMalformedNote) {
		t.Fatalf("Play error %v, want ErrMalformedNote", err)
	}
	if got := b.count("on"); got != 1 {
		t.Errorf("%d notes sounded before the bad token, want 1", got)
	}
}

func TestPlayerDriverError(t *testing.T) {
	fail := errors.New("pin stuck")
	b := &fakeBuzzer{fail: fail}
	p := chirp.NewPlayer(b)
	if err := p.Play("c"); !errors.Is(err, fail) {
		t.Errorf("Play error %v, want the driver's error", err)
	}
}

func TestPlayerTempo(t *testing.T) {
	p := chirp.NewPlayer(&fakeBuzzer{})
	p.SetTempo(8, 240)
	if ticks, bpm := p.Tempo(); ticks != 8 || bpm != 240 {
		t.Errorf("Tempo() = (%d, %d), want (8, 240)", ticks, bpm)
	}
	p.Reset()
	if ticks, bpm := p.Tempo(); ticks != 4 || bpm != 120 {
		t.Errorf("Tempo() after Reset = (%d, %d), want (4, 120)", ticks, bpm)
	}
}

func TestPlayerPitchSustain(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	if err := p.Pitch(440, chirp.Sustain); err != nil {
		t.Fatalf("Pitch error: %v", err)
	}
	want := []string{"freq 440", "on"}
	if got := b.recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("buzzer calls %v, want %v: a sustained pitch must not stop", got, want)
	}
	if err := p.Pitch(0, chirp.Sustain); err != nil {
		t.Fatalf("Pitch error: %v", err)
	}
	if got := b.recorded(); got[len(got)-1] != "off" {
		t.Errorf("buzzer calls %v, want a trailing off", got)
	}
}

func TestPlayerPitchBlocks(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	start := time.Now()
	if err := p.Pitch(262, 50*time.Millisecond); err != nil {
		t.Fatalf("Pitch error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Pitch returned after %v, want at least the 40ms hold plus the 10ms gap", elapsed)
	}
}

func TestPlayerStop(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	p.SetTempo(4, 600) // 100ms notes leave room to stop inside the first
	done := make(chan error, 1)
	go func() {
		done <- p.PlayContext(context.Background(), "c", "d", "e")
	}()
	deadline := time.Now().Add(5 * time.Second)
	for !b.has("on") {
		if time.Now().After(deadline) {
			t.Fatal("the first note never started")
		}
		time.Sleep(time.Millisecond)
	}
	if !p.Playing() {
		t.Error("Playing() false while a melody plays")
	}
	p.Stop()
	if err := <-done; err != nil {
		t.Fatalf("PlayContext after Stop: %v", err)
	}
	if p.Playing() {
		t.Error("Playing() true after PlayContext returned")
	}
	if b.has("freq 294") {
		t.Error("the note after Stop still sounded")
	}
}

func TestPlayerPlayContextCompletes(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	p.SetTempo(4, 6000)
	if err := p.PlayContext(context.Background(), "c", "d"); err != nil {
		t.Fatalf("PlayContext error: %v", err)
	}
	if p.Playing() {
		t.Error("Playing() true after a completed melody")
	}
	if got := b.count("on"); got != 2 {
		t.Errorf("%d notes sounded, want 2", got)
	}
}

func TestPlayerContextCancelled(t *testing.T) {
	b := &fakeBuzzer{}
	p := chirp.NewPlayer(b)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.PlayContext(ctx, "c")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("PlayContext error %v, want context.Canceled", err)
	}
	want := []string{"freq 262", "on", "off"}
	if got := b.recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("buzzer calls %v, want %v: cancellation must silence the buzzer", got, want)
	}
	if p.Playing() {
		t.Error("Playing() true after a cancelled PlayContext")
	}
}

func TestTone(t *testing.T) {
	b := &fakeBuzzer{}
	if err := chirp.Tone(b, 262); err != nil {
		t.Fatalf("Tone error: %v", err)
	}
	if err := chirp.Tone(b, 0); err != nil {
		t.Fatalf("Tone error: %v", err)
	}
	if err := chirp.Tone(b, -5); err != nil {
		t.Fatalf("Tone error: %v", err)
	}
	want := []string{"freq 262", "on", "off", "off"}
	if got := b.recorded(); !reflect.DeepEqual(got, want) {
		t.Errorf("buzzer calls %v, want %v", got, want)
	}
}

func TestHold(t *testing.T) {
	var tests = []struct {
		d, want time.Duration
	}{
		{500 * time.Millisecond, 490 * time.Millisecond},
		{20 * time.Millisecond, 10 * time.Millisecond},
		{15 * time.Millisecond, 5 * time.Millisecond},
		{10 * time.Millisecond, 0},
		{9 * time.Millisecond, 10 * time.Millisecond},
		{0, 10 * time.Millisecond},
		{chirp.Sustain, 0},
	}
	for _, tt := range tests {
		if got := chirp.Hold(tt.d); got != tt.want {
			t.Errorf("Hold(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}
