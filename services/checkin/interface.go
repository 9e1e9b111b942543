package checkin

import (
	"context"
	"time"

	checkinRepo "calmwave/database/repository/checkin"
	"calmwave/models"
	"calmwave/services/analytics"
	"calmwave/services/realtime"
	"calmwave/utils"
)

// MaxWindow caps how many recent check-ins a dashboard request may ask for.
const MaxWindow = 50

type CheckInService interface {
	Record(ctx context.Context, s utils.Session, in models.CheckInInput) (*models.CheckIn, error)
	// Recent returns the last limit check-ins in ascending time order.
	Recent(ctx context.Context, s utils.Session, limit int) ([]models.CheckIn, error)
	Dashboard(ctx context.Context, s utils.Session, limit int) (*models.Dashboard, error)
}

// DefaultCheckInService is the production implementation.
type DefaultCheckInService struct {
	Repo       checkinRepo.CheckInRepository
	Publisher  realtime.Publisher
	Window     int
	StreakMode analytics.StreakMode
	Now        func() time.Time
}

func (s *DefaultCheckInService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// window resolves a requested limit: non-positive means the configured default, anything above MaxWindow is clamped.
func (s *DefaultCheckInService) window(limit int) int {
	if limit <= 0 {
		limit = s.Window
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > MaxWindow {
		limit = MaxWindow
	}
	return limit
}
