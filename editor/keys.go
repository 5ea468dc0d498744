package editor

// Key codes delivered by the host. Printable keys use their rune value.
const (
	KeySpace     = ' '
	KeyEscape    = 27
	KeyBackspace = 127
)
