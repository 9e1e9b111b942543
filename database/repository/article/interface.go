package articleRepo

import (
	"context"

	"calmwave/models"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	// List returns articles newest first.
	List(ctx context.Context) ([]models.Article, error)
}
