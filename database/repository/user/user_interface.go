package userRepo

import (
	"context"

	"calmwave/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user profile access.
type UserRepository interface {
	// GetByID retrieves a profile by Firebase uid. Returns database.ErrNotFound on a miss.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a profile by email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new profile.
	Create(ctx context.Context, user *models.User) error
	// UpdateSetDocument applies a $set of the given fields.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	// ListByRole lists profiles with the role, optionally filtered by a case-insensitive name fragment.
	ListByRole(ctx context.Context, role models.Role, nameQuery string) ([]models.User, error)
}
