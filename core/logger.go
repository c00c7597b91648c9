package core

// Logger is implemented by all app loggers.
// Error args may carry an error, context maps and/or the acting user; each
// implementation decides what to do with them.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Enable(enabled bool)
}
