package renderer

import "errors"

var (
	ErrInterrupted    = errors.New("renderer: render interrupted")
	ErrInvalidConfig  = errors.New("renderer: invalid sampling configuration")
	ErrUnknownFormat  = errors.New("renderer: unknown image format")
	ErrWorkerPoolDone = errors.New("renderer: worker pool closed unexpectedly")
)
