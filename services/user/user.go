package user

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"calmwave/models"
	"calmwave/utils"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, sess utils.Session) (*models.User, error) {
	return s.Repo.GetByID(ctx, sess.UID)
}

// UpdateProfile applies the non-nil fields. Experience and hospital are therapist-only.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, sess utils.Session, upd models.ProfileUpdate) (*models.User, error) {
	set := bson.M{}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = strings.TrimSpace(*v)
		}
	}
	put("fullName", upd.FullName)
	put("age", upd.Age)
	put("contactNumber", upd.ContactNumber)
	put("profileImage", upd.ProfileImage)
	if sess.IsTherapist() {
		put("experience", upd.Experience)
		put("hospitalName", upd.HospitalName)
	} else if upd.Experience != nil || upd.HospitalName != nil {
		return nil, fmt.Errorf("experience and hospital are therapist fields: %w", utils.ErrForbidden)
	}

	if len(set) > 0 {
		if err := s.Repo.UpdateSetDocument(ctx, sess.UID, set); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetByID(ctx, sess.UID)
}

// UploadProfileImage stores the image under profiles/<uid>/ and points the profile at it.
func (s *DefaultUserService) UploadProfileImage(ctx context.Context, sess utils.Session, filename, contentType string, r io.Reader) (*models.User, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, utils.NewValidationError("image", "must be an image")
	}
	objectPath := fmt.Sprintf("profiles/%s/%d_%s", sess.UID, time.Now().UnixMilli(), path.Base(filename))
	obj, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}
	if err := s.Repo.UpdateSetDocument(ctx, sess.UID, bson.M{"profileImage": obj.URL}); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, sess.UID)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, sess utils.Session, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return utils.NewValidationError("token", "required")
	}
	return s.Repo.UpdateSetDocument(ctx, sess.UID, bson.M{"fcmToken": token})
}

// ListTherapists returns therapists whose name contains search, case-insensitively.
func (s *DefaultUserService) ListTherapists(ctx context.Context, search string) ([]models.User, error) {
	return s.Repo.ListByRole(ctx, models.RoleTherapist, search)
}

func (s *DefaultUserService) GetTherapist(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleTherapist {
		return nil, fmt.Errorf("therapist %s: %w", id, utils.ErrNotFound)
	}
	return u, nil
}
