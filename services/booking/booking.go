package booking

import (
	"context"
	"fmt"
	"strings"

	"calmwave/models"
	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books a pending appointment. The user's profile must carry a name and a contact number.
func (s *DefaultBookingSessionService) Create(ctx context.Context, sess utils.Session, req models.CreateBookingRequest) (*models.Booking, error) {
	if sess.IsTherapist() {
		return nil, fmt.Errorf("therapists cannot book sessions: %w", utils.ErrForbidden)
	}
	scheduled := strings.TrimSpace(req.ScheduledAt)
	if scheduled == "" {
		return nil, utils.NewValidationError("appointmentDate", "required")
	}

	therapist, err := s.Users.GetByID(ctx, req.TherapistID)
	if err != nil {
		return nil, err
	}
	if therapist.Role != models.RoleTherapist {
		return nil, fmt.Errorf("therapist %s: %w", req.TherapistID, utils.ErrNotFound)
	}
	profile, err := s.Users.GetByID(ctx, sess.UID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(profile.FullName) == "" || strings.TrimSpace(profile.ContactNumber) == "" {
		return nil, utils.NewValidationError("profile", "complete your name and contact number before booking")
	}

	b := &models.Booking{
		ID:             uuid.NewString(),
		TherapistID:    therapist.ID,
		TherapistEmail: therapist.Email,
		TherapistName:  therapist.FullName,
		UserID:         profile.ID,
		UserEmail:      profile.Email,
		UserName:       profile.FullName,
		UserContact:    profile.ContactNumber,
		ScheduledAt:    scheduled,
		Status:         models.BookingPending,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.publish(b, "booking.created")
	utils.GetLogger().Info("booking created",
		zap.String("bookingID", b.ID), zap.String("userID", b.UserID), zap.String("therapistID", b.TherapistID))
	return b, nil
}

func (s *DefaultBookingSessionService) ListForUser(ctx context.Context, sess utils.Session) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, sess.UID)
}

func (s *DefaultBookingSessionService) ListForTherapist(ctx context.Context, sess utils.Session) ([]models.Booking, error) {
	if !sess.IsTherapist() {
		return nil, fmt.Errorf("therapist bookings: %w", utils.ErrForbidden)
	}
	return s.Repo.ListByTherapist(ctx, sess.UID)
}

// publish tells both parties' live streams about the booking.
func (s *DefaultBookingSessionService) publish(b *models.Booking, eventType string) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(realtime.BookingsTopic(b.UserID), eventType, b)
	s.Publisher.Publish(realtime.BookingsTopic(b.TherapistID), eventType, b)
}
