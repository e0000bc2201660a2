package prospects

import "errors"

// ErrNotFound dikembalikan semua Repository implementation kalau id tidak ada
var ErrNotFound = errors.New("profile not found")

// ValidationError rejects bad input before generation is attempted.
// The HTTP layer maps it to a 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
