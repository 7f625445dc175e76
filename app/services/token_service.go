// Package services provides technical integrations such as token handling
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenService handles JWT token generation and validation
type TokenService interface {
	GenerateTokens(ctx context.Context, userID uint) (accessToken, refreshToken string, err error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, err error)
	RevokeToken(ctx context.Context, token string) error
}

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	UserID    uint      `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"` // "access" or "refresh"
	TokenID   string    `json:"jti"`        // JWT ID for token revocation
}

// TokenServiceImpl implements TokenService. Revoked token IDs are stored in
// Redis with a TTL matching the token expiry, so revocation survives restarts
// and is shared between instances.
type TokenServiceImpl struct {
	secretKey       []byte
	issuer          string
	audience        string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	rc              *redis.Client
}

// NewTokenService creates a new token service
func NewTokenService(secretKey []byte, issuer, audience string, rc *redis.Client) TokenService {
	return &TokenServiceImpl{
		secretKey:       secretKey,
		issuer:          issuer,
		audience:        audience,
		accessTokenTTL:  utils.AccessTokenTTL,
		refreshTokenTTL: utils.RefreshTokenTTL,
		rc:              rc,
	}
}

func (s *TokenServiceImpl) generateToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := utils.UTCNow()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"jti":        uuid.New().String(),
		"iss":        s.issuer,
		"aud":        s.audience,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// GenerateTokens issues an access/refresh token pair for a user.
func (s *TokenServiceImpl) GenerateTokens(ctx context.Context, userID uint) (string, string, error) {
	accessToken, err := s.generateToken(userID, "access", s.accessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.generateToken(userID, "refresh", s.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *TokenServiceImpl) parseToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	tokenType, _ := claims["token_type"].(string)
	tokenID, _ := claims["jti"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	return &TokenClaims{
		UserID:    uint(userID),
		IssuedAt:  time.Unix(int64(iat), 0).UTC(),
		ExpiresAt: time.Unix(int64(exp), 0).UTC(),
		TokenType: tokenType,
		TokenID:   tokenID,
	}, nil
}

func (s *TokenServiceImpl) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.rc == nil || tokenID == "" {
		return false, nil
	}

	_, err := s.rc.Get(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

// ValidateToken verifies signature, expiry and revocation of an access token.
func (s *TokenServiceImpl) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, ErrTokenInvalid
	}

	revoked, err := s.isRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RefreshToken exchanges a valid refresh token for a new pair and revokes the
// used refresh token.
func (s *TokenServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.TokenType != "refresh" {
		return "", "", ErrTokenInvalid
	}

	revoked, err := s.isRevoked(ctx, claims.TokenID)
	if err != nil {
		return "", "", err
	}
	if revoked {
		return "", "", ErrTokenRevoked
	}

	if err := s.revokeClaims(ctx, claims); err != nil {
		return "", "", err
	}

	return s.GenerateTokens(ctx, claims.UserID)
}

func (s *TokenServiceImpl) revokeClaims(ctx context.Context, claims *TokenClaims) error {
	if s.rc == nil || claims.TokenID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil // Already expired, nothing to revoke
	}

	if err := s.rc.Set(ctx, revokedTokenKeyPrefix+claims.TokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token revocation: %w", err)
	}
	return nil
}

// RevokeToken marks a token as revoked until its natural expiry.
func (s *TokenServiceImpl) RevokeToken(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}
	return s.revokeClaims(ctx, claims)
}
