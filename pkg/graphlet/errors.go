package graphlet

import "github.com/pkg/errors"

var (
	ErrUnknownKind = errors.New("unknown graphlet kind")
	ErrKeyOverflow = errors.New("label count too large for key width")
	ErrNoLabels    = errors.New("label count must be positive")
	ErrBadKeyWidth = errors.New("unsupported key width")
)
