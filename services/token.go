package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"hotel-manager/errors"
)

type UserInfo struct {
	UserId uint   `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenManager signs and verifies HS256 access tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken returns the signed token and its expiry as a unix timestamp
func (m *TokenManager) GenerateToken(userInfo UserInfo) (string, int64, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl).Unix()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt,
			IssuedAt:  now.Unix(),
			Subject:   fmt.Sprint(userInfo.UserId),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature and expiry. A "Bearer " prefix is tolerated.
func (m *TokenManager) ParseToken(tokenString string) (*UserInfo, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "missing token", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid or expired token", err)
	}
	if claims.UserInfo.UserId == 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "token carries no user", nil)
	}
	return &claims.UserInfo, nil
}
