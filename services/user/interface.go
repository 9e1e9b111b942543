package user

import (
	"context"
	"io"

	userRepo "calmwave/database/repository/user"
	"calmwave/models"
	"calmwave/services/storage"
	"calmwave/utils"

	"firebase.google.com/go/v4/auth"
)

type UserService interface {
	// Registration
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)

	// Profile
	GetProfile(ctx context.Context, s utils.Session) (*models.User, error)
	UpdateProfile(ctx context.Context, s utils.Session, upd models.ProfileUpdate) (*models.User, error)
	UploadProfileImage(ctx context.Context, s utils.Session, filename, contentType string, r io.Reader) (*models.User, error)
	UpdateFCMToken(ctx context.Context, s utils.Session, token string) error

	// Therapist directory
	ListTherapists(ctx context.Context, search string) ([]models.User, error)
	GetTherapist(ctx context.Context, id string) (*models.User, error)
}

// AuthClient is the part of the Firebase Auth client used for account management.
type AuthClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Auth    AuthClient
	Storage storage.StorageService
}
