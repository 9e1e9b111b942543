package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"calmwave/models"

	"github.com/golang-jwt/jwt"
)

// StreamClaims bind a websocket ticket to one user and one topic.
type StreamClaims struct {
	Topic string `json:"topic"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.StandardClaims
}

// TicketIssuer signs and validates short-lived websocket tickets.
type TicketIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTicketIssuer(secret string, ttl time.Duration) *TicketIssuer {
	return &TicketIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed ticket for the session and topic.
func (t *TicketIssuer) Issue(s Session, topic string) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := StreamClaims{
		Topic: topic,
		Email: s.Email,
		Role:  string(s.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   s.UID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Validate parses a ticket and returns the session and topic it was issued for.
func (t *TicketIssuer) Validate(ticket string) (Session, string, error) {
	claims := &StreamClaims{}
	token, err := jwt.ParseWithClaims(ticket, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return Session{}, "", err
	}
	if !token.Valid || claims.Subject == "" || claims.Topic == "" {
		return Session{}, "", errors.New("invalid ticket")
	}
	return Session{UID: claims.Subject, Email: claims.Email, Role: models.Role(claims.Role)}, claims.Topic, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
