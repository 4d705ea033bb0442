package midi_test

import (
	"testing"

	"github.com/chirpaudio/chirp/midi"
)

func TestKey(t *testing.T) {
	var tests = []struct {
		hz   int
		want uint8
	}{
		{440, 69},    // a4
		{262, 60},    // c4
		{524, 72},    // c5
		{277, 61},    // c#4
		{131, 48},    // c3
		{494, 71},    // b4
		{466, 70},    // a#4
		{27, 21},     // a0
		{12544, 127}, // g9 tops out the key range
		{1, 0},
		{0, 0},
		{-10, 0},
	}
	for _, tt := range tests {
		if got := midi.Key(tt.hz); got != tt.want {
			t.Errorf("Key(%d) = %d, want %d", tt.hz, got, tt.want)
		}
	}
}
