package chirp

// Built-in melodies in the notation Play accepts, handy for demos and
// for testing a freshly wired buzzer.
var (
	// Dadadadum opens Beethoven's fifth symphony.
	Dadadadum = []string{"r4:2", "g", "g", "g", "eb:8", "r:2", "f", "f", "f", "d:8"}

	// Ode is the Ode to Joy theme from Beethoven's ninth.
	Ode = []string{"e4", "e", "f", "g", "g", "f", "e", "d", "c", "c", "d", "e", "e:6", "d:2", "d:8"}

	// Birthday plays Happy Birthday to You.
	Birthday = []string{
		"g4:2", "g:2", "a:4", "g:4", "c5:4", "b4:8",
		"g:2", "g:2", "a:4", "g:4", "d5:4", "c:8",
		"g4:2", "g:2", "g5:4", "e:4", "c:4", "b4:4", "a:8",
		"f5:2", "f:2", "e:4", "c:4", "d:4", "c:8",
	}

	// Ringtone is a short ascending ring suitable for alerts.
	Ringtone = []string{"c4:1", "d", "e:2", "g", "d:1", "e", "f:2", "a", "e:1", "f", "g:2", "b", "c5:4"}

	// Scale walks one octave of the C major scale.
	Scale = []string{"c4", "d", "e", "f", "g", "a", "b", "c5"}
)

// Melodies indexes the built-in melodies by name.
var Melodies = map[string][]string{
	"dadadadum": Dadadadum,
	"ode":       Ode,
	"birthday":  Birthday,
	"ringtone":  Ringtone,
	"scale":     Scale,
}
