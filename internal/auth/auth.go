package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserInfo представляет информацию о пользователе в нашем приложении.
// Ядро читает только идентификатор и email — учётными данными
// управляет внешний провайдер идентичности.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

var (
	secret   []byte
	tokenTTL time.Duration
)

func Init(cfg *Config) {
	secret = []byte(cfg.Secret)
	tokenTTL = cfg.TokenTTL
}

// IssueToken выпускает токен для пользователя. В проде этим занимается
// внешний провайдер; здесь ручка логина — его заглушка.
func IssueToken(userID, email, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	return token.SignedString(secret)
}

// VerifyToken проверяет bearer-токен запроса и возвращает пользователя
func VerifyToken(r *http.Request) (*UserInfo, error) {
	authToken := r.Header.Get("Authorization")
	if authToken == "" {
		return nil, fmt.Errorf("no authorization header")
	}
	authToken = strings.TrimPrefix(authToken, "Bearer ")

	var c claims
	token, err := jwt.ParseWithClaims(authToken, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &UserInfo{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
	}, nil
}
