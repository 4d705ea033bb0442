package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Preferences are the chirp-play defaults: the tempo, the sample rate
// and the preferred output devices. The built-in values can be
// overridden with a preferences.yml in the user config dir, e.g.
// ~/.config/chirp/preferences.yml.
type Preferences struct {
	SampleRate int
	Ticks      int
	BPM        int
	MidiPort   string
	Pin        string
	YmlError   error
}

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// readCustomConfigYml modifies the target argument, i.e. needs a pointer
func readCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	path := filepath.Join(configDir, "chirp", filename)
	bytes, err2 := os.ReadFile(path)
	if err2 != nil {
		return false, err2
	}
	err = yaml.Unmarshal(bytes, target)
	return true, err
}

func makePreferences() Preferences {
	preferences := loadDefaultPreferences()
	exists, err := readCustomConfigYml("preferences.yml", &preferences)
	if exists {
		preferences.YmlError = err
	}
	return preferences
}
