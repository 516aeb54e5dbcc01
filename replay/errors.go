package replay

import (
	"errors"
	"fmt"
)

// Load failures. Every one of them aborts the whole load; Parse never
// returns a partially built Replay.
var (
	ErrMalformedHeader  = errors.New("malformed header")
	ErrMalformedPalette = errors.New("malformed palette")
	ErrMalformedGrid    = errors.New("malformed grid")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrDuplicateSymbol  = errors.New("duplicate symbol")
	ErrInvalidLayer     = errors.New("invalid layer")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrIO               = errors.New("i/o failure")
)

// ParseError locates a load failure in the replay text.
type ParseError struct {
	Line   int
	Err    error
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
