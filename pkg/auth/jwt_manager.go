package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
)

// Claims - полезная нагрузка токена доступа
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity - то, что подтверждает проверенный токен
type Identity struct {
	UserID   uuid.UUID
	Username string
}

type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
	parser        *jwt.Parser
}

type Option func(*JWTManager)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) {
		m.now = now
	}
}

func NewJWTManager(secret string, duration time.Duration, opts ...Option) *JWTManager {
	m := &JWTManager{
		secretKey:     []byte(secret),
		tokenDuration: duration,
		now:           time.Now,
		// срок действия проверяется вручную по m.now
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL возвращает время жизни выпускаемых токенов
func (m *JWTManager) TTL() time.Duration {
	return m.tokenDuration
}

// Issue создаёт JWT для пользователя и возвращает момент его истечения
func (m *JWTManager) Issue(userID uuid.UUID, username string) (string, time.Time, error) {
	now := m.now()
	expiresAt := jwt.NewNumericDate(now.Add(m.tokenDuration))
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt.Time, nil
}

// Verify проверяет подпись, затем срок действия, и только после этого
// доверяет содержимому токена
func (m *JWTManager) Verify(accessToken string) (*Identity, error) {
	parts := strings.Split(accessToken, ".")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}

	// сравниваем с канонической подписью целиком, чтобы любой изменённый
	// символ (в том числе хвостовые биты base64) отвергался
	expected, err := jwt.SigningMethodHS256.Sign(parts[0]+"."+parts[1], m.secretKey)
	if err != nil || subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) != 1 {
		return nil, ErrTokenBadSignature
	}

	claims := &Claims{}
	_, err = m.parser.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if !claims.VerifyExpiresAt(m.now(), true) {
		return nil, ErrTokenExpired
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrTokenMalformed)
	}

	return &Identity{UserID: userID, Username: claims.Username}, nil
}

// ExtractTokenFromHeader извлекает токен из Authorization header
func ExtractTokenFromHeader(r *http.Request) (string, error) {
	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
