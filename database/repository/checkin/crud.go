package checkinRepo

import (
	"context"
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

// MongoCheckInRepo implements CheckInRepository on the "checkins" collection.
type MongoCheckInRepo struct {
	coll *mongo.Collection
}

func NewMongoCheckInRepo(db *mongo.Database) CheckInRepository {
	repo := &MongoCheckInRepo{coll: db.Collection("checkins")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("checkins: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoCheckInRepo) ensureIndexes() error {
	ctx, cancel := database.NewContext(nil, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCheckInRepo) Create(ctx context.Context, checkIn *models.CheckIn) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, checkIn); err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

func (r *MongoCheckInRepo) Recent(ctx context.Context, ownerID string, limit int) ([]models.CheckIn, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, ownerID, opts)
}

func (r *MongoCheckInRepo) History(ctx context.Context, ownerID string) ([]models.CheckIn, error) {
	return r.find(ctx, ownerID, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
}

func (r *MongoCheckInRepo) find(ctx context.Context, ownerID string, opts *options.FindOptions) ([]models.CheckIn, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins for %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	checkIns := []models.CheckIn{}
	if err := cursor.All(ctx, &checkIns); err != nil {
		return nil, fmt.Errorf("failed to decode check-ins: %w", err)
	}
	return checkIns, nil
}
