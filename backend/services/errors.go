package services

import "errors"

// ErrDataSourceUnavailable is returned when the backing store cannot be
// reached. Callers fail closed; the bundled sample pool is only served when
// the repository was explicitly constructed for it.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

// ErrInvalidCriteria is returned for selection criteria rejected at the
// boundary. Wrapped errors name the offending field and value.
var ErrInvalidCriteria = errors.New("invalid selection criteria")
