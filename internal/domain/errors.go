package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrLevelLocked    = errors.New("level is locked")
	ErrNotEligible    = errors.New("all levels must be completed first")
	ErrQuizSubmitted  = errors.New("quiz already submitted")
	ErrNoAttemptsLeft = errors.New("no checker attempts left")
)
