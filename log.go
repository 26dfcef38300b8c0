package pixz

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is the environment variable that switches new loggers to debug
// level when it parses as true.
const DebugEnv = "PIXZ_DEBUG"

// Log field names used by backends.
const (
	LogFieldBackend   = "backend"
	LogFieldOperation = "operation"
	LogFieldKind      = "kind"
	LogFieldDuration  = "duration"
	LogFieldDevice    = "device"
	LogFieldSize      = "size"
)

// NewLogger returns a logger at info level, or debug level when
// PIXZ_DEBUG is set to a true value.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	if debugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func debugEnabled() bool {
	debug, err := strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		return false
	}
	return debug
}
