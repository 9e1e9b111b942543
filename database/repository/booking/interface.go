package bookingRepo

import (
	"context"

	"calmwave/models"
)

// BookingRepository defines methods for appointment persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID returns database.ErrNotFound on a miss.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser returns the user's bookings newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListByTherapist returns the therapist's bookings newest first.
	ListByTherapist(ctx context.Context, therapistID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	// SetFeedback marks feedback as provided and stores the rating and text that are present. A nil
	// rating or empty text leaves the stored value unchanged.
	SetFeedback(ctx context.Context, id string, rating *float64, feedback string) error
}
