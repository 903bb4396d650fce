package cue

import "fmt"

// ErrorKind classifies a generation failure.
type ErrorKind string

const (
	KindInvalidBPM      ErrorKind = "invalid_bpm"
	KindInvalidDuration ErrorKind = "invalid_duration"
	KindDropOutOfRange  ErrorKind = "drop_out_of_range"
)

// Sentinels for errors.Is. Any *ValidationError of the same kind matches.
var (
	ErrInvalidBPM      = &ValidationError{Kind: KindInvalidBPM}
	ErrInvalidDuration = &ValidationError{Kind: KindInvalidDuration}
	ErrDropOutOfRange  = &ValidationError{Kind: KindDropOutOfRange}
)

// ValidationError reports an input the generator refuses to work with.
type ValidationError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ValidationError) Error() string {
	var base string
	switch e.Kind {
	case KindInvalidBPM:
		base = "invalid BPM"
	case KindInvalidDuration:
		base = "invalid track duration"
	case KindDropOutOfRange:
		base = "drop out of range"
	default:
		base = string(e.Kind)
	}
	if e.Detail == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, e.Detail)
}

// Is matches any ValidationError with the same Kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// ErrorKind exposes the classification as a plain string.
func (e *ValidationError) ErrorKind() string {
	return string(e.Kind)
}

func invalid(kind ErrorKind, format string, args ...any) error {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
