package apperror

import "fmt"

// ValidationError rejects malformed or out-of-range input before any mutation.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validation(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func ValidationFields(msg string, fields map[string]string) *ValidationError {
	return &ValidationError{Msg: msg, Fields: fields}
}

// NotFoundError means a referenced id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError means an illegal state transition or a failed precondition,
// including losing an optimistic-concurrency race.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError means a reservation would drive stock below zero.
type InsufficientStockError struct {
	ListingID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock on listing %s for quantity %d", e.ListingID, e.Requested)
}

func InsufficientStock(listingID string, requested int) *InsufficientStockError {
	return &InsufficientStockError{ListingID: listingID, Requested: requested}
}
