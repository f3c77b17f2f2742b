package util

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
)

// GinContextKey is the key used to store the gin context in a request context
const GinContextKey string = "GinContextKey"

// Map applies a function to each element of a slice, returning a new slice
func Map[T, U any](xs []T, f func(T) (U, error)) ([]U, error) {
	result := make([]U, len(xs))
	for i, x := range xs {
		it, err := f(x)
		if err != nil {
			return nil, err
		}
		result[i] = it
	}
	return result, nil
}

// Dedupe removes duplicate elements from a slice, preserving first-seen order
func Dedupe[T comparable](src []T) []T {
	result := make([]T, 0, len(src))
	seen := make(map[T]bool, len(src))
	for _, x := range src {
		if !seen[x] {
			seen[x] = true
			result = append(result, x)
		}
	}
	return result
}

// Contains returns true if the slice contains the given element
func Contains[T comparable](s []T, x T) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}

// FromPointer returns the value of a pointer, or the zero value if the pointer is nil
func FromPointer[T comparable](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// ToPointer returns a pointer to the given value
func ToPointer[T any](v T) *T {
	return &v
}

// ErrorAs returns true if the error or any error it wraps is of type T
func ErrorAs[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// GinContextFromContext retrieves a gin context previously stored in the request context
func GinContextFromContext(ctx context.Context) *gin.Context {
	// If the current context is already a gin context, return it
	if gc, ok := ctx.(*gin.Context); ok {
		return gc
	}

	gc, ok := ctx.Value(GinContextKey).(*gin.Context)
	if !ok {
		panic("gin context not found in context")
	}

	return gc
}
