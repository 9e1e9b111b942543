package checkinRepo

import (
	"context"

	"calmwave/models"
)

// CheckInRepository stores mood check-ins. Check-ins are append-only.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *models.CheckIn) error
	// Recent returns the owner's newest check-ins, newest first.
	Recent(ctx context.Context, ownerID string, limit int) ([]models.CheckIn, error)
	// History returns every check-in of the owner in ascending timestamp order.
	History(ctx context.Context, ownerID string) ([]models.CheckIn, error)
}
