package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflicted        = errors.New("conflicted")
	ErrPolicyViolation   = errors.New("policy violation")
	ErrUnsupportedSource = errors.New("unsupported import source")
	ErrInvalidState      = errors.New("invalid state")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// PolicyViolationError is raised before any I/O when a request is not allowed
type PolicyViolationError struct {
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("policy violation: %s", e.Reason)
}

func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}

// ConflictError refuses to write a file edited outside the engine
type ConflictError struct {
	Path   string
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is conflicted: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s is conflicted: resolve the conflict before repairing", e.Path)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflicted
}

// IOError is a read, write or parse failure on one path
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ScanError is a per-file failure during an import scan
type ScanError struct {
	Source string
	Err    error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// NotFoundError names the missing entity
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
