package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the root logger. Production loggers emit JSON; development loggers
// emit colored text with timestamps.
func New(w io.Writer, level string, production bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	formatter := log.TextFormatter
	if production {
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}), nil
}
