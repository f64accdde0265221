package log

// Logger receives protocol trace events. Implementations must be safe for
// concurrent use and should not block; the adapter logs every ioctl.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// Tee returns a Logger handing each event to every non-nil logger in
// order. Without loggers it returns NoopLogger; a single logger is
// returned as is.
func Tee(loggers ...Logger) Logger {
	var sinks []Logger
	for _, l := range loggers {
		if l != nil {
			sinks = append(sinks, l)
		}
	}
	switch len(sinks) {
	case 0:
		return NoopLogger{}
	case 1:
		return sinks[0]
	}
	return LoggerFunc(func(event Event) {
		for _, l := range sinks {
			l.Log(event)
		}
	})
}

// Stamp returns a Logger that fills the envelope of one follower run
// before passing events to l: SessionID and Device when empty, Timestamp
// when zero. A nil l yields NoopLogger.
func Stamp(l Logger, sessionID, device string) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return LoggerFunc(func(event Event) {
		if event.SessionID == "" {
			event.SessionID = sessionID
		}
		if event.Device == "" {
			event.Device = device
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = now()
		}
		l.Log(event)
	})
}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
)
