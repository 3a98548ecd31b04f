// Package auth signs operators in against the operators table and issues
// HS256 tokens carrying their role and permissions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/operator"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims are embedded in every issued token.
type Claims struct {
	OperatorID  string               `json:"operator_id"`
	Name        string               `json:"name"`
	Role        operator.Role        `json:"role"`
	Permissions operator.Permissions `json:"permissions"`
	jwt.RegisteredClaims
}

// Operator returns the id of the signed-in operator.
func (c *Claims) Operator() (uuid.UUID, error) {
	return uuid.Parse(c.OperatorID)
}

// Session is the locally signed-in operator.
type Session struct {
	Operator  *operator.Operator `json:"operator,omitempty"`
	Token     string             `json:"token,omitempty"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

func (s Session) SignedIn() bool {
	return s.Operator != nil && s.Token != ""
}

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*operator.Operator, bool, error)
}

type Service struct {
	operators Authenticator
	session   *state.Value[Session]
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(operators Authenticator, session *state.Value[Session], secret string, ttl time.Duration) *Service {
	return &Service{
		operators: operators,
		session:   session,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *Service) Current() Session {
	return s.session.Get()
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	op, ok, err := s.operators.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, operator.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		slog.Error("failed to look up operator", "error", err)

		return nil, err
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.ttl)

	token, err := s.sign(op, expiresAt)
	if err != nil {
		return nil, err
	}

	sess := Session{Operator: op, Token: token, ExpiresAt: &expiresAt}
	s.session.Set(state.SourceLocal, sess)

	slog.Info("operator signed in", "operator_id", op.ID, "role", op.Role)

	return &sess, nil
}

func (s *Service) Logout() {
	s.session.Set(state.SourceLocal, Session{})
}

func (s *Service) sign(op *operator.Operator, expiresAt time.Time) (string, error) {
	now := s.now()

	claims := Claims{
		OperatorID:  op.ID.String(),
		Name:        op.Name,
		Role:        op.Role,
		Permissions: op.Effective(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// ParseToken validates an HS256 token and returns its claims.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
