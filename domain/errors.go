package domain

import "errors"

var (
	ErrStoreUnavailable = errors.New("rating store unavailable")

	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCatalogTimeout     = errors.New("catalog request timed out")
	ErrCatalogMalformed   = errors.New("catalog response malformed")
)

var ErrAlreadyExists = errors.New("record already exists")
