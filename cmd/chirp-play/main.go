package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/chirpaudio/chirp"
	"github.com/chirpaudio/chirp/midi"
	"github.com/chirpaudio/chirp/oto"
	"github.com/chirpaudio/chirp/pwm"
	"github.com/chirpaudio/chirp/synth"
	"github.com/chirpaudio/chirp/version"
)

func main() {
	prefs := makePreferences()
	ticks := flag.Int("t", prefs.Ticks, "Ticks per beat.")
	bpm := flag.Int("b", prefs.BPM, "Beats per minute.")
	rate := flag.Int("rate", prefs.SampleRate, "Sample rate for playback and rendering.")
	midiOut := flag.Bool("m", false, "Play through a MIDI output port instead of the speakers.")
	port := flag.String("port", prefs.MidiPort, "MIDI output port, matched as a case-insensitive substring. By default, the first port.")
	gpioOut := flag.Bool("g", false, "Drive a buzzer on a GPIO pin instead of the speakers.")
	pin := flag.String("pin", prefs.Pin, "GPIO pin wired to the buzzer, e.g. GPIO13.")
	rawOut := flag.Bool("r", false, "Render the melody to a .raw file. By default, saves a mono float32 buffer to disk.")
	wavOut := flag.Bool("w", false, "Render the melody to a .wav file. By default, saves a mono float32 buffer to disk.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when rendering.")
	directory := flag.String("o", "", "Directory where to write rendered files. The directory and its parents are created if needed.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	list := flag.Bool("l", false, "List the built-in melodies.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}
	if *list {
		names := make([]string, 0, len(chirp.Melodies))
		for name := range chirp.Melodies {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if prefs.YmlError != nil {
		fmt.Fprintf(os.Stderr, "warning: could not parse the preferences file: %v\n", prefs.YmlError)
	}
	name, tokens, err := melody(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if len(tokens) == 0 {
		flag.Usage()
		os.Exit(0)
	}
	play := *midiOut || *gpioOut || (!*rawOut && !*wavOut) // playing is the default when no other output is defined
	var buzzer chirp.Buzzer
	closeBuzzer := func() {}
	if play {
		switch {
		case *midiOut && *gpioOut:
			fmt.Fprintln(os.Stderr, "choose either -m or -g, not both")
			os.Exit(1)
		case *midiOut:
			out, err := midi.Open(*port)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not open the MIDI port: %v\n", err)
				os.Exit(1)
			}
			buzzer = out
			closeBuzzer = func() {
				out.Close()
				midi.CloseDriver()
			}
		case *gpioOut:
			b, err := pwm.Open(*pin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not open the GPIO pin: %v\n", err)
				os.Exit(1)
			}
			buzzer = b
			closeBuzzer = func() { b.Close() }
		default:
			audio, err := oto.NewContext(*rate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not acquire the audio context: %v\n", err)
				os.Exit(1)
			}
			b := audio.Buzzer()
			buzzer = b
			closeBuzzer = func() {
				time.Sleep(100 * time.Millisecond) // let the player drain
				b.Close()
			}
		}
	}
	retval := 0
	if *rawOut || *wavOut {
		renderer := synth.Renderer{SampleRate: *rate, Ticks: *ticks, BPM: *bpm}
		buffer, err := renderer.Render(tokens...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not render the melody: %v\n", err)
			os.Exit(1)
		}
		output := func(extension string, contents []byte) error {
			if *stdout {
				os.Stdout.Write(contents)
				return nil
			}
			dir := *directory
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
				}
			}
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
			f := filepath.Join(dir, name+extension)
			if err := os.WriteFile(f, contents, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", f, err)
			}
			return nil
		}
		if *rawOut {
			raw, err := synth.Raw(buffer, *pcm)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not generate .raw file: %v\n", err)
				retval = 1
			} else if err := output(".raw", raw); err != nil {
				fmt.Fprintf(os.Stderr, "error outputting .raw file: %v\n", err)
				retval = 1
			}
		}
		if *wavOut {
			wav, err := synth.Wav(buffer, *rate, *pcm)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not generate .wav file: %v\n", err)
				retval = 1
			} else if err := output(".wav", wav); err != nil {
				fmt.Fprintf(os.Stderr, "error outputting .wav file: %v\n", err)
				retval = 1
			}
		}
	}
	if play {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		player := chirp.NewPlayer(buzzer)
		player.SetTempo(*ticks, *bpm)
		err := player.PlayContext(ctx, tokens...)
		stop()
		closeBuzzer()
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "could not play the melody: %v\n", err)
			retval = 1
		}
	}
	os.Exit(retval)
}

// melody resolves the command line arguments into the notes to play:
// the name of a built-in melody, note tokens as-is, or tokens read from
// the standard input when nothing else is given.
func melody(args []string) (name string, tokens []string, err error) {
	if len(args) == 1 {
		if notes, ok := chirp.Melodies[args[0]]; ok {
			return args[0], notes, nil
		}
	}
	if len(args) > 0 {
		return "melody", args, nil
	}
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", nil, nil // interactive terminal, nothing piped in
	}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("could not read the standard input: %v", err)
	}
	return "melody", tokens, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Chirp command line utility for playing buzzer melodies.\nUsage: %s [flags] [note ...]\n", os.Args[0])
	flag.PrintDefaults()
}
