package mockapi

import (
	"context"
	"errors"
	"time"

	v1 "rewearadmin/pkg/api/v1"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "rewear:mock:session:"
	issuer         = "rewear-mock-admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrSessionExpired     = errors.New("session expired")
)

type AdminClaims struct {
	Email string `json:"sub"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates the mock backend's JWT pairs. Refresh
// tokens live on an allow-list in redis so rotation and logout behave like
// the real backend.
type AuthService struct {
	redis      *redis.Client
	accounts   *AccountStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(rdb *redis.Client, accounts *AccountStore, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		redis:      rdb,
		accounts:   accounts,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*v1.TokenResponse, error) {
	account, ok := s.accounts.Authenticate(email, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return s.generateTokens(ctx, account)
}

// Refresh rotates the pair when the presented refresh token matches the
// allow-list entry. The client under test never calls this; it exists so the
// mock stays faithful to the backend contract.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*v1.TokenResponse, error) {
	claims, err := s.Validate(refreshToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	stored, err := s.redis.Get(ctx, redisKeyPrefix+claims.Email).Result()
	if err == redis.Nil {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, err
	}
	if stored != refreshToken {
		return nil, ErrTokenInvalid
	}

	// The rotated pair carries the identity from the validated claims.
	return s.generateTokens(ctx, Account{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  v1.Role(claims.Role),
	})
}

func (s *AuthService) Validate(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *AuthService) generateTokens(ctx context.Context, account Account) (*v1.TokenResponse, error) {
	now := time.Now()

	atClaims := AdminClaims{
		Email: account.Email,
		Name:  account.Name,
		Role:  string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, atClaims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	rtClaims := AdminClaims{
		Email: account.Email,
		Name:  account.Name,
		Role:  string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.New().String(),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, rtClaims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, redisKeyPrefix+account.Email, refreshToken, s.refreshTTL).Err(); err != nil {
		return nil, err
	}

	return &v1.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    v1.DefaultTokenType,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
