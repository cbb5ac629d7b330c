package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotAnObject       = errors.New("payload is not an object")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidTemplateID = errors.New("invalid template id")
	ErrEmptyData         = errors.New("submission data is empty")
	ErrMissingType       = errors.New("submission type is missing")
)

// SubmitValidationError lists the visible fields whose answers failed
// validation, keyed by field id.
type SubmitValidationError struct {
	Violations map[string]string
}

func (e *SubmitValidationError) Error() string {
	ids := make([]string, 0, len(e.Violations))
	for id := range e.Violations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s: %s", id, e.Violations[id])
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}
