package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotFound     = errors.New("not found")
)
