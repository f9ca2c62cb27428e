package cache

// Fields carries structured context for a log line, e.g. the cache key or
// an eviction reason.
type Fields map[string]any

// Logger is the narrow leveled interface the cache logs through. Adapters
// for zap, slog and logrus live in the log/ subpackages; a nil Logger in
// Options silences the cache entirely.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
