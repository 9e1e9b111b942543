package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calmwave/database"
	"calmwave/models"
	"calmwave/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoChatRepo keeps channels and messages in two collections.
type MongoChatRepo struct {
	channels *mongo.Collection
	messages *mongo.Collection
}

func NewMongoChatRepo(db *mongo.Database) ChatRepository {
	repo := &MongoChatRepo{
		channels: db.Collection("channels"),
		messages: db.Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("chat: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(nil, 10*time.Second)
	defer cancel()

	if _, err := r.channels.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create channel indexes: %w", err)
	}
	if _, err := r.messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "channelId", Value: 1}, {Key: "timestamp", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) CreateChannel(ctx context.Context, channel *models.Channel) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.channels.InsertOne(ctx, channel); err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var channel models.Channel
	if err := r.channels.FindOne(ctx, bson.M{"id": id}).Decode(&channel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("channel %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch channel %s: %w", id, err)
	}
	return &channel, nil
}

func (r *MongoChatRepo) ListChannels(ctx context.Context) ([]models.Channel, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.channels.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer cursor.Close(ctx)

	channels := []models.Channel{}
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, fmt.Errorf("failed to decode channels: %w", err)
	}
	return channels, nil
}

func (r *MongoChatRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) ListMessages(ctx context.Context, channelID string) ([]models.Message, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"channelId": channelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for %s: %w", channelID, err)
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return msgs, nil
}
