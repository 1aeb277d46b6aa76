package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserInfo is the credential-side view of a user account, loaded during
// sign-in and token refresh.
type UserInfo struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates signed tokens. Access and refresh
// tokens are signed with different secrets so one cannot stand in for the
// other.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (string, error)
	GenerateRefreshToken(userID string, email string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// ServiceAPI performs authentication-related business logic.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)
