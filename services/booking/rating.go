package booking

import (
	"context"
	"encoding/json"

	"calmwave/models"
	"calmwave/services/analytics"
	"calmwave/utils"

	"go.uber.org/zap"
)

// TherapistRating aggregates the therapist's feedback, served from cache when possible.
// Cache errors fall through to the repository.
func (s *DefaultBookingSessionService) TherapistRating(ctx context.Context, therapistID string) (models.RatingSummary, error) {
	if s.RatingCache != nil {
		if raw, ok, err := s.RatingCache.Get(ctx, therapistID); err != nil {
			utils.GetLogger().Warn("rating cache read failed", zap.String("therapistID", therapistID), zap.Error(err))
		} else if ok {
			var cached models.RatingSummary
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	bookings, err := s.Repo.ListByTherapist(ctx, therapistID)
	if err != nil {
		return models.RatingSummary{}, err
	}
	summary := analytics.AggregateRatings(bookings)

	if s.RatingCache != nil && s.RatingTTL > 0 {
		raw, _ := json.Marshal(summary)
		if err := s.RatingCache.Set(ctx, therapistID, raw, s.RatingTTL); err != nil {
			utils.GetLogger().Warn("rating cache write failed", zap.String("therapistID", therapistID), zap.Error(err))
		}
	}
	return summary, nil
}

func (s *DefaultBookingSessionService) invalidateRating(ctx context.Context, therapistID string) {
	if s.RatingCache == nil {
		return
	}
	if err := s.RatingCache.Delete(ctx, therapistID); err != nil {
		utils.GetLogger().Warn("rating cache invalidation failed", zap.String("therapistID", therapistID), zap.Error(err))
	}
}
