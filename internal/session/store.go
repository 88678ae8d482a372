package session

import (
	"context"
	"fmt"
	"time"

	"rallyround/internal/models"
	"rallyround/internal/utils"

	"gorm.io/gorm"
)

// User is the slice of identity the route guard needs.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a resolved login. The guard only ever reads it; all mutation
// happens in the auth handlers.
type Session struct {
	User      User
	ExpiresAt time.Time
}

// Store resolves a session token (cookie value) to a session. A nil
// session with a nil error means "not logged in"; an error means the
// lookup itself failed.
type Store interface {
	GetSession(ctx context.Context, token string) (*Session, error)
}

// GormStore verifies the token signature and checks the persisted login
// row, so revoked sessions stop working even before the token expires.
type GormStore struct {
	db        *gorm.DB
	jwtSecret string
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, jwtSecret string) *GormStore {
	return &GormStore{db: db, jwtSecret: jwtSecret}
}

func (s *GormStore) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := utils.ParseJWTWithSecret(token, s.jwtSecret)
	if err != nil {
		// A malformed or forged cookie is "not logged in", not a failure.
		return nil, nil
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}

	var stored models.AuthSession
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND token = ? AND is_deleted = false", claims.UserID, token).
		First(&stored).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	if !stored.ExpiresAt.IsZero() && stored.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}

	return &Session{
		User:      User{ID: claims.UserID, Email: claims.Email},
		ExpiresAt: stored.ExpiresAt,
	}, nil
}
