package server

import "errors"

var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrUnknownAction        = errors.New("unknown action")
)
