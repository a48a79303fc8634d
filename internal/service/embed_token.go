package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokensDisabled = errors.New("embed-токены не настроены")
	ErrInvalidToken   = errors.New("неверный токен")
)

var embedSecret []byte

// срок жизни embed-токена: страница с игрой живёт недолго
const embedTokenTTL = 24 * time.Hour

// InitJWT устанавливает секрет подписи embed-токенов.
// Пустой секрет означает, что хост встраивает игры без токенов
func InitJWT(secret string) {
	if secret == "" {
		embedSecret = nil
		return
	}
	embedSecret = []byte(secret)
}

// JWTEnabled сообщает, требуется ли токен при подключении
func JWTEnabled() bool {
	return len(embedSecret) > 0
}

// GenerateJWT выпускает токен для участника, которого хост встраивает в игру
func GenerateJWT(memberID string) (string, error) {
	if !JWTEnabled() {
		return "", ErrTokensDisabled
	}

	claims := jwt.RegisteredClaims{
		Subject:   memberID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(embedTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(embedSecret)
}

// ParseJWT проверяет токен и возвращает member_id из subject
func ParseJWT(tokenStr string) (string, error) {
	if !JWTEnabled() {
		return "", ErrTokensDisabled
	}

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return embedSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
