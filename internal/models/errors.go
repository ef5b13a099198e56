package models

import "errors"

// ErrStorageUnavailable wraps every failure to read, decode or write the
// stored collection. Callers should surface it as a generic failure.
var ErrStorageUnavailable = errors.New("feedback storage unavailable")
