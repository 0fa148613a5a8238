package seed

import (
	"fmt"
	"log/slog"
	"strings"
)

// poolLogger adapts slog to the ants logger interface.
type poolLogger struct {
	logger *slog.Logger
}

func newPoolLogger(logger *slog.Logger) *poolLogger {
	return &poolLogger{logger: logger.With("component", "ants")}
}

func (l *poolLogger) Printf(format string, args ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
