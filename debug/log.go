package debug

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	file    *os.File
	logger  zerolog.Logger
	enabled bool
)

// Enable starts debug logging to ~/.config/notefield/debug.log
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	homeDir, _ := os.UserHomeDir()
	dir := filepath.Join(homeDir, ".config", "notefield")
	os.MkdirAll(dir, 0755)

	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	logger = zerolog.New(f).With().Timestamp().Logger()
	enabled = true

	logger.Info().Str("tag", "debug").Msg("=== debug logging started ===")
	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// Log writes a tagged message to the debug log
func Log(tag, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().Str("tag", tag).Msgf(format, args...)
}

// Warn writes a tagged warning to the debug log
func Warn(tag, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Warn().Str("tag", tag).Msgf(format, args...)
}

// Dump logs a deep dump of a value. Verbose - use for interactive diagnosis only.
func Dump(tag, label string, v any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Debug().Str("tag", tag).Str("label", label).Msg(spew.Sdump(v))
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, tag, format string, args ...any) {
	mu.Lock()
	key := tag + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(tag, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
