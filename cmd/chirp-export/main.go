package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chirpaudio/chirp"
	"github.com/chirpaudio/chirp/export"
	"github.com/chirpaudio/chirp/version"
)

func main() {
	headerOut := flag.Bool("header", false, "Output a C header with the melody data instead of a sketch.")
	inoOut := flag.Bool("ino", false, "Output an Arduino sketch (default behaviour when no other output is defined).")
	boardName := flag.String("board", "uno", "Board to target with the sketch.")
	name := flag.String("n", "melody", "Name used for the output file and the header identifiers.")
	ticks := flag.Int("t", 0, "Ticks per beat. Zero keeps the default.")
	bpm := flag.Int("b", 0, "Beats per minute. Zero keeps the default.")
	outPath := flag.String("o", "", "Directory where to write the output. The directory and its parents are created if needed.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	list := flag.Bool("l", false, "List the known boards.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}
	exporter, err := export.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating exporter: %v\n", err)
		os.Exit(1)
	}
	if *list {
		for _, b := range exporter.Boards() {
			fmt.Printf("%-8s%s (pin %s)\n", b.Name, b.Title, b.Pin)
		}
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	tokens := flag.Args()
	if len(tokens) == 1 {
		if notes, ok := chirp.Melodies[tokens[0]]; ok {
			if *name == "melody" {
				*name = tokens[0]
			}
			tokens = notes
		}
	}
	if !*headerOut {
		*inoOut = true // if the user gives nothing to output, then the default behaviour is to write a sketch
	}
	output := func(extension string, contents []byte) error {
		if *stdout {
			fmt.Print(string(contents))
			return nil
		}
		dir := *outPath
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
		f := filepath.Join(dir, *name+extension)
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}
	retval := 0
	if *inoOut {
		board, err := exporter.Board(*boardName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v, use -l to list the known boards\n", err)
			os.Exit(1)
		}
		sketch, err := exporter.Sketch(board, *ticks, *bpm, tokens...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not export the sketch: %v\n", err)
			retval = 1
		} else if err := output(".ino", sketch); err != nil {
			fmt.Fprintf(os.Stderr, "error outputting .ino file: %v\n", err)
			retval = 1
		}
	}
	if *headerOut {
		header, err := exporter.Header(*name, *ticks, *bpm, tokens...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not export the header: %v\n", err)
			retval = 1
		} else if err := output(".h", header); err != nil {
			fmt.Fprintf(os.Stderr, "error outputting .h file: %v\n", err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Chirp exporter. Input note tokens or a built-in melody name, outputs Arduino sketches or C headers with the melody data.\nUsage: %s [flags] [note ...]\n", os.Args[0])
	flag.PrintDefaults()
}
