package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thereayou/trail-service/internal/database"
	"github.com/thereayou/trail-service/pkg/auth"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	UserID    uuid.UUID
	Username  string
	Email     string
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users     UserStore
	passwords PasswordHasher
	tokens    TokenIssuer
	log       logrus.FieldLogger

	// сравнение с ним уравнивает время ответа для несуществующего логина
	dummyHash string
}

func NewAuthService(users UserStore, passwords PasswordHasher, tokens TokenIssuer, log logrus.FieldLogger) *AuthService {
	dummy, err := passwords.Hash(uuid.NewString())
	if err != nil {
		log.WithError(err).Warn("cannot prepare dummy password hash")
	}
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		log:       log,
		dummyHash: dummy,
	}
}

// NormalizeEmail: адреса сравниваются без учёта регистра
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)

	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, internal("check username", err)
	}
	if exists {
		return nil, &DuplicateCredentialError{Field: "username"}
	}

	exists, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, internal("check email", err)
	}
	if exists {
		return nil, &DuplicateCredentialError{Field: "email"}
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, auth.MaxPasswordBytes)
		}
		return nil, internal("hash password", err)
	}

	// проверки выше не атомарны со вставкой; решает уникальный индекс
	userID, err := s.users.CreateUser(ctx, in.Username, email, hash)
	if err != nil {
		var dup *database.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &DuplicateCredentialError{Field: dup.Field}
		}
		return nil, internal("create user", err)
	}

	token, expiresAt, err := s.tokens.Issue(userID, in.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}

	s.log.WithField("user_id", userID).Info("user registered")

	return &AuthResult{
		UserID:    userID,
		Username:  in.Username,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return nil, internal("find user", err)
		}
		s.passwords.Verify(password, s.dummyHash)
		s.log.Warn("login failed")
		return nil, ErrInvalidCredentials
	}

	// bcrypt выполняется всегда, чтобы неактивный аккаунт не отвечал быстрее
	passwordOK := s.passwords.Verify(password, user.PasswordHash)
	if !passwordOK || !user.Active {
		s.log.Warn("login failed")
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, internal("update last login", err)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")

	return &AuthResult{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
