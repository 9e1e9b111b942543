package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"calmwave/database"
	"calmwave/models"
	"calmwave/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// ProfileLookup loads the profile that carries the session's role.
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SessionCache remembers verified tokens. *utils.RedisCache satisfies it.
type SessionCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// FirebaseAuthMiddleware authenticates "Authorization: Bearer <Firebase ID token>" and stores a
// utils.Session on the context. Verified tokens are cached by hash until AuthCacheTTL or token expiry.
func FirebaseAuthMiddleware(verifier TokenVerifier, profiles ProfileLookup, cache SessionCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		ctx := c.Request.Context()
		key := utils.HashToken(tokenString)
		logger := utils.GetLogger()

		if cache != nil {
			if raw, ok, err := cache.Get(ctx, key); err != nil {
				logger.Warn("auth cache read failed", zap.Error(err))
			} else if ok {
				var s utils.Session
				if json.Unmarshal(raw, &s) == nil && s.UID != "" {
					utils.SetSession(c, s)
					c.Next()
					return
				}
			}
		}

		token, err := verifier.VerifyIDToken(ctx, tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
			return
		}

		profile, err := profiles.GetByID(ctx, token.UID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				utils.JSONError(c, http.StatusUnauthorized, "Profile not found", "")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load profile", "")
			return
		}

		s := utils.Session{UID: profile.ID, Email: profile.Email, Role: profile.Role}
		if cache != nil {
			ttl := utils.AuthCacheTTL
			if left := time.Until(time.Unix(token.Expires, 0)); left < ttl {
				ttl = left
			}
			if ttl > 0 {
				raw, _ := json.Marshal(s)
				if err := cache.Set(ctx, key, raw, ttl); err != nil {
					logger.Warn("auth cache write failed", zap.Error(err))
				}
			}
		}

		utils.SetSession(c, s)
		c.Next()
	}
}
