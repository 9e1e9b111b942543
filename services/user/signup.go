package user

import (
	"context"
	"fmt"
	"strings"

	"calmwave/models"
	"calmwave/utils"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// Register creates the Firebase account and its profile document. The account is removed again if the
// profile cannot be written.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 6 {
		return nil, utils.NewValidationError("email", "email and a password of at least 6 characters are required")
	}
	if req.Role != models.RoleUser && req.Role != models.RoleTherapist {
		return nil, utils.NewValidationError("role", "must be user or therapist")
	}

	record, err := s.Auth.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(email).
		Password(req.Password).
		DisplayName(strings.TrimSpace(req.FullName)))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, fmt.Errorf("email %s: %w", email, utils.ErrConflict)
		}
		return nil, fmt.Errorf("create auth account: %w", err)
	}

	profile := &models.User{
		ID:            record.UID,
		Email:         email,
		Role:          req.Role,
		FullName:      strings.TrimSpace(req.FullName),
		Age:           strings.TrimSpace(req.Age),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		if delErr := s.Auth.DeleteUser(ctx, record.UID); delErr != nil {
			utils.GetLogger().Error("Register: failed to roll back auth account",
				zap.String("uid", record.UID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	utils.GetLogger().Info("user registered", zap.String("uid", profile.ID), zap.String("role", string(profile.Role)))
	return profile, nil
}
