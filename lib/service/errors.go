package service

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrAlreadyComplete       = errors.New("payment already complete")
	ErrInvalidName           = errors.New("invalid community name")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrDuplicateContribution = errors.New("duplicate contribution reference")
)
