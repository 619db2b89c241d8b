// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a write collided with a concurrent modification.
var ErrConflict = errors.New("conflict: resource was modified by another request")

// ErrValidation indicates the input failed a validation rule. Wrap it with
// a message naming the offending field.
var ErrValidation = errors.New("validation failed")
