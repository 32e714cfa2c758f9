package labels

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is matched by every ShapeMismatchError.
var ErrShapeMismatch = errors.New("items and labels differ in length")

// ShapeMismatchError reports parallel sequences of different lengths.
type ShapeMismatchError struct {
	Items  int
	Labels int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %d items, %d labels", ErrShapeMismatch, e.Items, e.Labels)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// CheckShape returns a *ShapeMismatchError when the lengths differ.
func CheckShape(items, labels int) error {
	if items != labels {
		return &ShapeMismatchError{Items: items, Labels: labels}
	}
	return nil
}
