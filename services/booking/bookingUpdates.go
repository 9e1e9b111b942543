package booking

import (
	"context"
	"fmt"
	"strings"

	"calmwave/models"
	"calmwave/utils"

	"go.uber.org/zap"
)

// UpdateStatus lets the booking's therapist change its status under the configured policy.
func (s *DefaultBookingSessionService) UpdateStatus(ctx context.Context, sess utils.Session, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !sess.IsTherapist() || b.TherapistID != sess.UID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, utils.ErrForbidden)
	}
	if err := s.policy().CanTransition(b.Status, status); err != nil {
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}

	if err := s.Repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	s.publish(b, "booking.updated")
	s.notifyStatus(ctx, b)
	return b, nil
}

// notifyStatus queues the status push and, for approvals with a readable date, a reminder. Queue failures
// are logged and do not fail the status change.
func (s *DefaultBookingSessionService) notifyStatus(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger().With(zap.String("bookingID", b.ID))

	payload := models.PushPayload{
		UserID:    b.UserID,
		BookingID: b.ID,
		Title:     "Booking " + string(b.Status),
		Body:      fmt.Sprintf("Your session with %s on %s was %s.", b.TherapistName, b.ScheduledAt, b.Status),
		Data:      map[string]string{"status": string(b.Status)},
	}
	if err := s.Notifier.NotifyStatus(ctx, payload); err != nil {
		logger.Warn("failed to queue status notification", zap.Error(err))
	}

	if b.Status != models.BookingApproved {
		return
	}
	at, ok := ParseAppointmentDate(b.ScheduledAt)
	if !ok {
		logger.Debug("no reminder: unparseable appointment date", zap.String("date", b.ScheduledAt))
		return
	}
	fireAt := at.Add(-s.ReminderLead)
	if !fireAt.After(s.now()) {
		return
	}
	reminder := models.PushPayload{
		UserID:    b.UserID,
		BookingID: b.ID,
		Title:     "Upcoming session",
		Body:      fmt.Sprintf("Your session with %s starts at %s.", b.TherapistName, b.ScheduledAt),
	}
	if err := s.Notifier.ScheduleReminder(ctx, reminder, fireAt); err != nil {
		logger.Warn("failed to schedule reminder", zap.Error(err))
	}
}

// SubmitFeedback records the user's rating and/or text and drops the therapist's cached summary.
// A part left out of a resubmission keeps its earlier value.
func (s *DefaultBookingSessionService) SubmitFeedback(ctx context.Context, sess utils.Session, bookingID string, req models.FeedbackRequest) (*models.Booking, error) {
	text := strings.TrimSpace(req.Feedback)
	if req.Rating == nil && text == "" {
		return nil, utils.NewValidationError("feedback", "please provide a rating or feedback")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, utils.NewValidationError("rating", "must be between 1 and 5")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != sess.UID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, utils.ErrForbidden)
	}
	if err := s.policy().CanSubmitFeedback(b); err != nil {
		return nil, err
	}

	if err := s.Repo.SetFeedback(ctx, bookingID, req.Rating, text); err != nil {
		return nil, err
	}
	if req.Rating != nil {
		b.Rating = req.Rating
	}
	if text != "" {
		b.Feedback = text
	}
	b.FeedbackProvided = true

	s.invalidateRating(ctx, b.TherapistID)
	s.publish(b, "booking.feedback")
	return b, nil
}
