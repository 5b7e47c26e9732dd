package render

import "errors"

var (
	// ErrStopped is returned when mounting a renderer that has been unmounted.
	// A stopped renderer is never restarted; build a new one instead.
	ErrStopped = errors.New("render: renderer stopped")

	// ErrAlreadyMounted is returned by a second Mount on a running renderer.
	ErrAlreadyMounted = errors.New("render: renderer already mounted")
)
