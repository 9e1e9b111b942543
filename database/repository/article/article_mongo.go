package articleRepo

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

// MongoArticleRepo implements ArticleRepository on the "articles" collection.
type MongoArticleRepo struct {
	coll *mongo.Collection
}

func NewMongoArticleRepo(db *mongo.Database) ArticleRepository {
	repo := &MongoArticleRepo{coll: db.Collection("articles")}

	ctx, cancel := database.NewContext(nil, 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		utils.GetLogger().Warn("articles: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoArticleRepo) Create(ctx context.Context, article *models.Article) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, article); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (r *MongoArticleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var article models.Article
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&article); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("article %s: %w", id, database.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch article %s: %w", id, err)
	}
	return &article, nil
}

func (r *MongoArticleRepo) List(ctx context.Context) ([]models.Article, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := []models.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}
