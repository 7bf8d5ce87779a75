package circuit

import "errors"

// Collection errors
var (
	ErrComponentNotFound = errors.New("component not found")
	ErrWireNotFound      = errors.New("wire not found")
	ErrUnknownTerminal   = errors.New("unknown terminal")
	ErrUnknownKind       = errors.New("unknown component kind")
	ErrSelfWire          = errors.New("wire endpoints reference the same terminal")
)

// Document errors
var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
)
