package jwt

import (
	"errors"
	"fmt"
	"moviecatalog/user"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID  int64  `json:"user_id"` // nolint: tagliatelle
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"` // nolint: tagliatelle
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

type JWTProvider struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	now        func() time.Time
}

func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (p *JWTProvider) GenerateAccessToken(u user.User) (string, error) {
	return p.sign(u, TypeAccess, p.AccessTTL)
}

func (p *JWTProvider) GenerateRefreshToken(u user.User) (string, error) {
	return p.sign(u, TypeRefresh, p.RefreshTTL)
}

// ParseAccessToken verifies an access token and returns its claims.
func (p *JWTProvider) ParseAccessToken(accessToken string) (*Claims, error) {
	return p.parse(accessToken, TypeAccess)
}

// ParseRefreshToken verifies a refresh token and returns the user it was
// issued for. Only the id and email are known from the token.
func (p *JWTProvider) ParseRefreshToken(refreshToken string) (user.User, error) {
	claims, err := p.parse(refreshToken, TypeRefresh)
	if err != nil {
		return user.User{}, err
	}
	return user.User{
		ID:          claims.UserID,
		Email:       claims.Email,
		IsSuperuser: claims.IsAdmin,
	}, nil
}

func (p *JWTProvider) sign(u user.User, tokenType string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := &Claims{
		UserID:  u.ID,
		Email:   u.Email,
		IsAdmin: u.IsSuperuser,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(p.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (p *JWTProvider) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.Secret), nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenType {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID <= 0 || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
