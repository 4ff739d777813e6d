package booking

import "github.com/google/uuid"

// ConflictChecker finds an active booking of the resource that overlaps the candidate range.
// Implementations may assume existing was pre-filtered by resource and date, but must not rely on it.
type ConflictChecker interface {
	FindConflict(resourceID uuid.UUID, candidate TimeRange, existing []*Booking, excludeID uuid.UUID) *Booking
}

// LinearConflictChecker scans the candidates in order and stops at the first overlap.
type LinearConflictChecker struct{}

func NewLinearConflictChecker() *LinearConflictChecker {
	return &LinearConflictChecker{}
}

func (LinearConflictChecker) FindConflict(resourceID uuid.UUID, candidate TimeRange, existing []*Booking, excludeID uuid.UUID) *Booking {
	for _, b := range existing {
		if b == nil || b.id == excludeID || b.resourceID != resourceID || !b.IsActive() {
			continue
		}
		if Overlaps(b.timeRange, candidate) {
			return b
		}
	}
	return nil
}

// CheckSlot wraps FindConflict into a ConflictError.
func CheckSlot(checker ConflictChecker, resourceID uuid.UUID, candidate TimeRange, existing []*Booking, excludeID uuid.UUID) error {
	if c := checker.FindConflict(resourceID, candidate, existing, excludeID); c != nil {
		return &ConflictError{ConflictingID: c.id, Range: c.timeRange}
	}
	return nil
}
