package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	chatRepo "calmwave/database/repository/chat"
	"calmwave/models"
	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/google/uuid"
)

const maxMessageLength = 2000

type ChatService interface {
	CreateChannel(ctx context.Context, s utils.Session, name string) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	PostMessage(ctx context.Context, s utils.Session, channelID, text string) (*models.Message, error)
	ListMessages(ctx context.Context, channelID string) ([]models.Message, error)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Repo      chatRepo.ChatRepository
	Publisher realtime.Publisher
	Now       func() time.Time
}

func (s *DefaultChatService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultChatService) CreateChannel(ctx context.Context, sess utils.Session, name string) (*models.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.NewValidationError("name", "channel name is required")
	}
	ch := &models.Channel{ID: uuid.NewString(), Name: name, CreatedBy: sess.Email, CreatedAt: s.now()}
	if err := s.Repo.CreateChannel(ctx, ch); err != nil {
		return nil, err
	}
	if s.Publisher != nil {
		s.Publisher.Publish(realtime.TopicChannels, "channel.created", ch)
	}
	return ch, nil
}

func (s *DefaultChatService) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return s.Repo.ListChannels(ctx)
}

// PostMessage appends a message authored by the session's email.
func (s *DefaultChatService) PostMessage(ctx context.Context, sess utils.Session, channelID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.NewValidationError("text", "message is empty")
	}
	if len(text) > maxMessageLength {
		return nil, utils.NewValidationError("text", fmt.Sprintf("message longer than %d bytes", maxMessageLength))
	}
	if _, err := s.Repo.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}

	msg := &models.Message{ID: uuid.NewString(), ChannelID: channelID, Text: text, User: sess.Email, Timestamp: s.now()}
	if err := s.Repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if s.Publisher != nil {
		s.Publisher.Publish(realtime.ChannelTopic(channelID), "message.created", msg)
	}
	return msg, nil
}

func (s *DefaultChatService) ListMessages(ctx context.Context, channelID string) ([]models.Message, error) {
	if _, err := s.Repo.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}
	return s.Repo.ListMessages(ctx, channelID)
}
