package cli

import (
	"io"
	"time"

	"github.com/forge-labs/forge/internal/branding"
	"github.com/forge-labs/forge/internal/config"
	"github.com/forge-labs/forge/internal/logging"
)

// openLogger writes to console and to a fresh run log under the config
// directory. The returned func closes the run log. A log file that cannot
// be opened is reported and the run continues on the console alone.
func openLogger(console io.Writer, level string) (*logging.Logger, func()) {
	lvl := logging.ParseLevel(level)
	f, err := logging.OpenRunLog(config.LogDir(), logging.DefaultKeep, time.Now())
	if err != nil {
		log := logging.New(console, lvl, branding.LogRoot())
		log.Sub("MAIN").Warn("Could not open run log", "error", err)
		return log, func() {}
	}
	log := logging.New(io.MultiWriter(console, f), lvl, branding.LogRoot())
	return log, func() { f.Close() }
}
