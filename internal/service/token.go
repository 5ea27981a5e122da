package service

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenKind различает access- и refresh-токены: у каждого вида свой
// секрет и TTL, claim "kind" не даёт предъявить один вместо другого.
type tokenKind string

const (
	kindAccess  tokenKind = "access"
	kindRefresh tokenKind = "refresh"
)

type sessionClaims struct {
	Kind tokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// generateAccessToken выпускает access-токен (HS256, короткий TTL).
func (s *Service) generateAccessToken(userID uuid.UUID, now time.Time) (string, error) {
	return s.generateToken(kindAccess, userID, now, s.cfg.Auth.AccessTokenTTL, s.cfg.Auth.AccessSecret)
}

// generateRefreshToken выпускает refresh-токен (HS256, отдельный секрет, длинный TTL).
func (s *Service) generateRefreshToken(userID uuid.UUID, now time.Time) (string, error) {
	return s.generateToken(kindRefresh, userID, now, s.cfg.Auth.RefreshTokenTTL, s.cfg.Auth.RefreshSecret)
}

func (s *Service) generateToken(kind tokenKind, userID uuid.UUID, now time.Time, ttl time.Duration, secret string) (string, error) {
	const op = "service/token/generateToken"

	claims := sessionClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает каждый выпуск уникальным: iat имеет секундную
			// точность, и без jti две пары, выпущенные в одну секунду,
			// совпали бы байт в байт — ротация слота стала бы no-op.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Auth.Issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateAccessToken проверяет подпись и срок access-токена, возвращает userID.
func (s *Service) validateAccessToken(raw string) (uuid.UUID, error) {
	return s.validateToken(kindAccess, raw, s.cfg.Auth.AccessSecret)
}

// validateRefreshToken проверяет подпись и срок refresh-токена, возвращает userID.
// Структурная валидность необходима, но недостаточна: действительность
// определяет сравнение хэша со слотом аккаунта (см. RefreshTokens).
func (s *Service) validateRefreshToken(raw string) (uuid.UUID, error) {
	return s.validateToken(kindRefresh, raw, s.cfg.Auth.RefreshSecret)
}

func (s *Service) validateToken(kind tokenKind, raw, secret string) (uuid.UUID, error) {
	const op = "service/token/validateToken"

	token, err := jwt.ParseWithClaims(raw, &sessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Auth.Issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Kind != kind {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}

// hashToken — sha256 от предъявляемого значения в base64url.
// В БД хранится только хэш: утечка дампа не раскрывает действующие токены.
func hashToken(plain string) string {
	hashBytes := sha256.Sum256([]byte(plain))

	return base64.RawURLEncoding.EncodeToString(hashBytes[:])
}
