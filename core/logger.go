package core

// Logger logs messages locally and optionally ships them to an error tracker.
// args may carry an error, extra context maps or the authenticated principal.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Principal identifies the authenticated caller for error reporting.
type Principal struct {
	ID    string
	Name  string
	Email string
}
