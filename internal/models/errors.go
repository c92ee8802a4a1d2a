package models

import (
	"errors"
	"fmt"
)

var (
	ErrPartFetch          = errors.New("part fetch failed")
	ErrPartNotFound       = errors.New("part not found")
	ErrPartTooLarge       = errors.New("part exceeds size limit")
	ErrInvalidPartName    = errors.New("invalid part name")
	ErrNoParts            = errors.New("no parts configured")
	ErrInvoke             = errors.New("entry point invocation failed")
	ErrEntryPointTimeout  = errors.New("entry point did not appear in time")
	ErrHandoffUnavailable = errors.New("handoff host is not configured")
)

// PartError описывает неудачную загрузку конкретной части.
// StatusCode равен нулю, если ответ не был получен (транспортная ошибка).
type PartError struct {
	Part       string
	Index      int
	StatusCode int
	Err        error
}

func (e *PartError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: %d", e.Part, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Part, e.Err)
}

// Unwrap позволяет сверять ошибку и с ErrPartFetch, и с исходной причиной.
func (e *PartError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPartFetch}
	}
	return []error{ErrPartFetch, e.Err}
}
