package booking

import (
	"context"
	"time"

	bookingRepo "calmwave/database/repository/booking"
	"calmwave/models"
	"calmwave/services/realtime"
	"calmwave/utils"
)

type BookingService interface {
	Create(ctx context.Context, s utils.Session, req models.CreateBookingRequest) (*models.Booking, error)
	ListForUser(ctx context.Context, s utils.Session) ([]models.Booking, error)
	ListForTherapist(ctx context.Context, s utils.Session) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, s utils.Session, bookingID string, status models.BookingStatus) (*models.Booking, error)
	SubmitFeedback(ctx context.Context, s utils.Session, bookingID string, req models.FeedbackRequest) (*models.Booking, error)
	TherapistRating(ctx context.Context, therapistID string) (models.RatingSummary, error)
	Progress(ctx context.Context, s utils.Session) ([]models.TherapistProgress, error)
}

// UserLookup resolves the therapist and user profiles a booking copies names from.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Notifier queues push notifications about booking changes.
type Notifier interface {
	NotifyStatus(ctx context.Context, payload models.PushPayload) error
	ScheduleReminder(ctx context.Context, payload models.PushPayload, fireAt time.Time) error
}

// Cache stores rating summaries. *utils.RedisCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DefaultBookingSessionService is the production implementation.
type DefaultBookingSessionService struct {
	Repo         bookingRepo.BookingRepository
	Users        UserLookup
	Policy       TransitionPolicy
	Notifier     Notifier
	Publisher    realtime.Publisher
	RatingCache  Cache
	RatingTTL    time.Duration
	ReminderLead time.Duration
	Now          func() time.Time
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingSessionService) policy() TransitionPolicy {
	if s.Policy == nil {
		return PermissivePolicy{}
	}
	return s.Policy
}
