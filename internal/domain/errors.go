package domain

import "errors"

// ErrInvalidArgument marks a malformed constructor or operator input.
// It is always returned before any state mutation, so a caller that sees
// it can assume the target value is unchanged.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound marks a lookup for a run that does not exist (or has been
// pruned from the registry).
var ErrNotFound = errors.New("not found")
