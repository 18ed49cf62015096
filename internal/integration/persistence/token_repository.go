package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgetloom/backend/internal/integration/persistence/model"
)

// TokenRepository defines the interface for refresh token persistence
// operations. Tokens are stored hashed; callers pass the hash, never the
// raw token.
type TokenRepository interface {
	// SaveRefreshToken saves a refresh token hash to the database.
	SaveRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid checks if a refresh token is valid (exists, not
	// invalidated and not expired).
	IsRefreshTokenValid(ctx context.Context, tokenHash string) (bool, error)

	// InvalidateRefreshToken marks a refresh token as invalidated.
	InvalidateRefreshToken(ctx context.Context, tokenHash string) error

	// DeleteExpired removes refresh tokens past their expiry.
	DeleteExpired(ctx context.Context) error
}

// tokenRepository implements the TokenRepository interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// SaveRefreshToken saves a refresh token hash to the database.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error {
	refreshToken := &model.RefreshTokenModel{
		TokenHash:   tokenHash,
		UserID:      userID,
		Invalidated: false,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Create(refreshToken)
	return result.Error
}

// IsRefreshTokenValid checks if a refresh token is valid.
func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, tokenHash string) (bool, error) {
	var refreshToken model.RefreshTokenModel
	result := r.db.WithContext(ctx).
		Where("token_hash = ? AND invalidated = ? AND expires_at > ?", tokenHash, false, time.Now().UTC()).
		First(&refreshToken)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// InvalidateRefreshToken marks a refresh token as invalidated.
func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, tokenHash string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ?", tokenHash).
		Update("invalidated", true)
	return result.Error
}

// DeleteExpired removes refresh tokens past their expiry.
func (r *tokenRepository) DeleteExpired(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Delete(&model.RefreshTokenModel{}, "expires_at <= ?", time.Now().UTC())
	return result.Error
}
