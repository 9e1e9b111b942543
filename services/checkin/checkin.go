package checkin

import (
	"context"
	"fmt"

	"calmwave/models"
	"calmwave/services/analytics"
	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Chart labels read day/month, as on the mobile dashboard.
const dashboardLabelLayout = "02/01 15:04"

// Record stores a check-in stamped with the current time and notifies the owner's live streams.
func (s *DefaultCheckInService) Record(ctx context.Context, sess utils.Session, in models.CheckInInput) (*models.CheckIn, error) {
	if !analytics.IsEmotion(string(in.Emotion)) {
		return nil, utils.NewValidationError("emotion", fmt.Sprintf("unknown emotion %q", in.Emotion))
	}
	if in.Alcohol != models.AlcoholYes && in.Alcohol != models.AlcoholNo {
		return nil, utils.NewValidationError("alcohol", "must be yes or no")
	}

	c := &models.CheckIn{
		ID:        uuid.NewString(),
		OwnerID:   sess.UID,
		Email:     sess.Email,
		Emotion:   in.Emotion,
		Alcohol:   in.Alcohol,
		Timestamp: s.now(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.Publisher != nil {
		s.Publisher.Publish(realtime.CheckInsTopic(sess.UID), "checkin.created", c)
	}
	utils.GetLogger().Debug("check-in recorded", zap.String("uid", sess.UID), zap.String("emotion", string(c.Emotion)))
	return c, nil
}

func (s *DefaultCheckInService) Recent(ctx context.Context, sess utils.Session, limit int) ([]models.CheckIn, error) {
	newest, err := s.Repo.Recent(ctx, sess.UID, s.window(limit))
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest, nil
}

// Dashboard builds the chart points from the recent window and the streak from the full history.
func (s *DefaultCheckInService) Dashboard(ctx context.Context, sess utils.Session, limit int) (*models.Dashboard, error) {
	recent, err := s.Recent(ctx, sess, limit)
	if err != nil {
		return nil, err
	}
	history, err := s.Repo.History(ctx, sess.UID)
	if err != nil {
		return nil, err
	}

	points := make([]models.DashboardPoint, 0, len(recent))
	for _, c := range recent {
		v := analytics.MapEmotion(c.Emotion)
		points = append(points, models.DashboardPoint{
			ID:        c.ID,
			Timestamp: c.Timestamp,
			Label:     c.Timestamp.UTC().Format(dashboardLabelLayout),
			Emotion:   c.Emotion,
			Score:     v.Score,
			Glyph:     v.Glyph,
		})
	}

	return &models.Dashboard{
		Points:             points,
		DaysWithoutAlcohol: analytics.ComputeStreakWithMode(history, s.StreakMode),
	}, nil
}
