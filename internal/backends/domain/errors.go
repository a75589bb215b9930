package domain

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("version conflict")
	ErrUpstream        = errors.New("upstream request failed")
	ErrInvalidResponse = errors.New("upstream returned unusable content")
)
