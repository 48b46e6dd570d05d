package models

import "errors"

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrStoreCorrupt       = errors.New("follow store corrupt")
	ErrSessionTimeout     = errors.New("selection timed out")
	ErrInvalidInput       = errors.New("invalid input")
)
