package playground

import "errors"

// unknownSourceError is returned for a source name the board does not have.
type unknownSourceError struct{ name string }

func (e unknownSourceError) Error() string { return "source not found: " + e.name }

// IsUnknownSource reports whether err indicates a missing source name.
func IsUnknownSource(err error) bool {
	var u unknownSourceError
	return errors.As(err, &u)
}

// unsupportedEventError is returned when a source does not emit the
// requested kind of event.
type unsupportedEventError struct{ source, event string }

func (e unsupportedEventError) Error() string {
	return "source " + e.source + " does not emit " + e.event + " events"
}

// IsUnsupportedEvent reports whether err indicates an event kind the source
// does not emit.
func IsUnsupportedEvent(err error) bool {
	var u unsupportedEventError
	return errors.As(err, &u)
}
