package booking

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrInvalidTimeOfDay  = errors.New("invalid time of day")
	ErrInvalidDate       = errors.New("invalid date")
	ErrNegativePrice     = errors.New("total price cannot be negative")
	ErrNotesTooLong      = errors.New("notes are too long")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSlotConflict      = errors.New("time slot is already booked")
	ErrNoShowTooEarly    = errors.New("booking has not ended yet")
	ErrBookingNotActive  = errors.New("booking is no longer active")
)

// TransitionError names the current and requested status of a rejected lifecycle change.
type TransitionError struct {
	From   Status
	To     Status
	Reason error
}

func (e *TransitionError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("cannot move booking from %s to %s: %v", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func (e *TransitionError) Unwrap() error {
	return e.Reason
}

// ConflictError identifies the active booking that already holds the slot.
// ConflictingID is uuid.Nil when the storage layer rejected the write without naming the holder.
type ConflictError struct {
	ConflictingID uuid.UUID
	Range         TimeRange
}

func (e *ConflictError) Error() string {
	if e.ConflictingID == uuid.Nil {
		return ErrSlotConflict.Error()
	}
	return fmt.Sprintf("%s by booking %s (%s)", ErrSlotConflict.Error(), e.ConflictingID, e.Range)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
