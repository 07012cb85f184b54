package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers unknown users, inactive accounts and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims is the bearer token payload.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService logs users in and verifies the tokens it issues.
type AuthService struct {
	Users  *UserRepository
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (a *AuthService) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Login checks the password against the stored bcrypt hash and returns a signed token.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.Users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if user == nil || !user.Active() {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.IssueToken(user.ID, user.Username, user.Role)
}

// IssueToken signs an HS256 token valid for the configured TTL.
func (a *AuthService) IssueToken(id int64, username, role string) (string, error) {
	now := a.now()
	claims := Claims{
		ID:       id,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func (a *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// HashPassword returns the bcrypt hash stored in users.password_hash.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
