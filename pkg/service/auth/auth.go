// Package auth verifies credentials and issues the JWTs the HTTP boundary
// uses to identify the acting user. The core services trust the identity the
// boundary resolves and never re-verify credentials themselves.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bankhive/bankcore/config"
	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password,
// indistinguishably.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates users and issues tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates an auth service.
func NewService(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger, now: time.Now}
}

// Login verifies the email/password pair and returns a signed JWT carrying the
// user's id, email and role.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	logger := s.logger.With("op", "Login", "email", email)
	users, err := s.uow.UserRepository()
	if err != nil {
		return "", err
	}
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Warn("login rejected: unknown email")
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		logger.Warn("login rejected: bad password")
		return "", ErrInvalidCredentials
	}
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID
	claims["email"] = u.Email
	claims["role"] = string(u.Role)
	claims["exp"] = s.now().Add(s.cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", err
	}
	logger.Info("login successful", "userID", u.ID)
	return signed, nil
}

// UserIDFromClaims extracts the acting user's id from verified token claims.
func UserIDFromClaims(claims jwt.MapClaims) (uint, bool) {
	v, ok := claims["user_id"].(float64)
	if !ok || v < 1 {
		return 0, false
	}
	return uint(v), true
}
