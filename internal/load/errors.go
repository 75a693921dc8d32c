package load

import (
	"fmt"
	"math"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
)

// MissingInputError is returned when a required form stage has not been saved.
// It is distinct from a stage that holds explicit zeros.
type MissingInputError struct {
	Room  domain.RoomType
	Stage domain.Stage
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s calculation: %s stage has not been provided", e.Room, e.Stage)
}

// DegenerateInputError is returned when an input would make a load divide by
// zero, fall outside its physical range, or come out non-finite.
type DegenerateInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input %s=%g: %s", e.Field, e.Value, e.Reason)
}

func requirePositive(field string, v float64) error {
	if v <= 0 {
		return &DegenerateInputError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if v < 0 {
		return &DegenerateInputError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}

// requireDailyHours accepts (0, 24].
func requireDailyHours(field string, v float64) error {
	if err := requirePositive(field, v); err != nil {
		return err
	}
	if v > 24 {
		return &DegenerateInputError{Field: field, Value: v, Reason: "must not exceed 24 hours per day"}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// finiteCheck keeps the first non-finite output it is shown.
type finiteCheck struct {
	err error
}

func (c *finiteCheck) check(field string, v float64) {
	if c.err != nil {
		return
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.err = &DegenerateInputError{Field: field, Value: v, Reason: "result is not a finite number"}
	}
}
