package logger

import "errors"

var (
	ErrUnknownLevel     = errors.New("unknown log level")
	ErrUnknownFormat    = errors.New("unknown log format")
	ErrUnknownColorMode = errors.New("unknown color mode")
)
