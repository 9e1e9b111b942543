package chatRepo

import (
	"context"

	"calmwave/models"
)

// ChatRepository stores community channels and their messages.
type ChatRepository interface {
	CreateChannel(ctx context.Context, channel *models.Channel) error
	GetChannel(ctx context.Context, id string) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns the channel's messages oldest first.
	ListMessages(ctx context.Context, channelID string) ([]models.Message, error)
}
