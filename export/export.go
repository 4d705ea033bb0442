// Package export renders melodies as source code for microcontroller
// projects: a ready-to-flash Arduino sketch, or a C header holding the
// frequency and duration data for hand-written players. Board profiles
// come from an embedded list; templates can be tweaked per board
// without recompiling the exporter logic.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/chirpaudio/chirp"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templates embed.FS

//go:embed boards.yml
var boardsYml []byte

// Board describes the buzzer wiring of one microcontroller target: the
// default pin and which tone API its Arduino core speaks.
type Board struct {
	Name  string `yaml:"name"`  // short name used on the command line
	Title string `yaml:"title"` // human-readable board name
	Pin   string `yaml:"pin"`   // default buzzer pin
	API   string `yaml:"api"`   // "tone" or "ledc"
}

// Exporter holds the parsed templates and board profiles.
type Exporter struct {
	template *template.Template
	boards   []Board
}

// New returns an Exporter with the built-in templates and boards.
func New() (*Exporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("could not parse the export templates: %v", err)
	}
	var list struct {
		Boards []Board `yaml:"boards"`
	}
	if err := yaml.Unmarshal(boardsYml, &list); err != nil {
		return nil, fmt.Errorf("could not parse the board list: %v", err)
	}
	return &Exporter{template: tmpl, boards: list.Boards}, nil
}

// Boards returns the known board profiles.
func (e *Exporter) Boards() []Board {
	return e.boards
}

// Board returns the profile with the given short name.
func (e *Exporter) Board(name string) (Board, error) {
	for _, b := range e.boards {
		if b.Name == name {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("unknown board %q", name)
}

// Note is one melody event with the timing a sketch needs: the sounding
// time in milliseconds, after which the articulation gap follows.
type Note struct {
	Hz int
	Ms int
}

// macros is the data the templates render.
type macros struct {
	Board  Board
	Name   string
	Tokens string
	Notes  []Note
	GapMs  int
}

// Sketch renders the melody as an Arduino sketch for the board, looping
// the melody with the same timing Player would use.
func (e *Exporter) Sketch(board Board, ticks, bpm int, tokens ...string) ([]byte, error) {
	notes, err := resolve(ticks, bpm, tokens)
	if err != nil {
		return nil, err
	}
	return e.execute("sketch.ino.tmpl", macros{
		Board:  board,
		Tokens: strings.Join(tokens, " "),
		Notes:  notes,
		GapMs:  int(chirp.Articulation / time.Millisecond),
	})
}

// Header renders the melody as a C header of frequency/duration pairs.
// The name becomes the identifier base and is sanitized into one.
func (e *Exporter) Header(name string, ticks, bpm int, tokens ...string) ([]byte, error) {
	notes, err := resolve(ticks, bpm, tokens)
	if err != nil {
		return nil, err
	}
	return e.execute("header.h.tmpl", macros{
		Name:   identifier(name),
		Tokens: strings.Join(tokens, " "),
		Notes:  notes,
		GapMs:  int(chirp.Articulation / time.Millisecond),
	})
}

func (e *Exporter) execute(templateName string, data macros) ([]byte, error) {
	result := new(bytes.Buffer)
	if err := e.template.ExecuteTemplate(result, templateName, data); err != nil {
		return nil, fmt.Errorf("could not execute template %q: %v", templateName, err)
	}
	return result.Bytes(), nil
}

// resolve parses the melody and fixes each note's sounding time the way
// Player would play it.
func resolve(ticks, bpm int, tokens []string) ([]Note, error) {
	ctx := chirp.NewContext()
	if ticks > 0 {
		ctx.TicksPerBeat = ticks
	}
	if bpm > 0 {
		ctx.BPM = bpm
	}
	parsed, err := chirp.ParseMelody(&ctx, tokens...)
	if err != nil {
		return nil, err
	}
	notes := make([]Note, len(parsed))
	for i, n := range parsed {
		notes[i] = Note{Hz: n.Frequency, Ms: int(chirp.Hold(n.Duration) / time.Millisecond)}
	}
	return notes, nil
}

// identifier turns a free-form name into a C identifier.
func identifier(name string) string {
	var id []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_':
			id = append(id, c)
		case c >= '0' && c <= '9':
			if len(id) == 0 {
				id = append(id, '_')
			}
			id = append(id, c)
		default:
			id = append(id, '_')
		}
	}
	if len(id) == 0 {
		return "melody"
	}
	return string(id)
}
