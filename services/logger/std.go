package logsvc

import (
	"log"

	"github.com/smarttrack/backend/core"
)

// StdLogger logs to a standard library logger; the default for local
// development and tests.
type StdLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std, enabled: true}
}

func (l *StdLogger) Enable(enabled bool) {
	l.enabled = enabled
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.print("INFO: "+msg, args)
}

func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR: "+msg, args)
}

func (l *StdLogger) print(msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}
