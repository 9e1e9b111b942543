package booking

import (
	"fmt"

	"calmwave/models"
	"calmwave/utils"
)

// TransitionPolicy decides which status changes and feedback writes a booking accepts.
type TransitionPolicy interface {
	CanTransition(from, to models.BookingStatus) error
	CanSubmitFeedback(b *models.Booking) error
}

// PermissivePolicy allows any status change and repeated feedback. Last write wins.
type PermissivePolicy struct{}

func (PermissivePolicy) CanTransition(_, to models.BookingStatus) error {
	if !validStatus(to) {
		return utils.NewValidationError("status", fmt.Sprintf("unknown status %q", to))
	}
	return nil
}

func (PermissivePolicy) CanSubmitFeedback(*models.Booking) error { return nil }

// StrictPolicy only lets a pending booking be decided once, and takes feedback once on approved bookings.
type StrictPolicy struct{}

func (StrictPolicy) CanTransition(from, to models.BookingStatus) error {
	if !validStatus(to) {
		return utils.NewValidationError("status", fmt.Sprintf("unknown status %q", to))
	}
	if from == to {
		return nil
	}
	if from == models.BookingPending && (to == models.BookingApproved || to == models.BookingRejected) {
		return nil
	}
	return fmt.Errorf("%s -> %s: %w", from, to, utils.ErrInvalidTransition)
}

func (StrictPolicy) CanSubmitFeedback(b *models.Booking) error {
	if b.Status != models.BookingApproved {
		return fmt.Errorf("feedback on %s booking: %w", b.Status, utils.ErrInvalidTransition)
	}
	if b.FeedbackProvided {
		return utils.ErrFeedbackAlreadyProvided
	}
	return nil
}

// PolicyFor picks the policy from the strict-transitions setting.
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return StrictPolicy{}
	}
	return PermissivePolicy{}
}

func validStatus(s models.BookingStatus) bool {
	switch s {
	case models.BookingPending, models.BookingApproved, models.BookingRejected:
		return true
	}
	return false
}
