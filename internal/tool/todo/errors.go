package todo

import (
	"errors"
)

// -- Sentinels --

var (
	// ErrUnknownMarker is returned when a scan requests a marker outside
	// the supported set.
	ErrUnknownMarker = errors.New("unknown marker, supported markers are TODO, FIXME, HACK, XXX")
)
