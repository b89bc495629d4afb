package resolver

import "errors"

var (
	ErrNotFound         = errors.New("no matching track")
	ErrInvalidSelection = errors.New("invalid selection")
)
