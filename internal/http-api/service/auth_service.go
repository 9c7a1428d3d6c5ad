package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mathspring/internal/config"
	"mathspring/internal/http-api/models"
	"mathspring/internal/http-api/repository"
	"mathspring/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuthService authenticates credentials and manages signed session tokens.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	ResolveToken(ctx context.Context, tokenString string) (*models.User, error)
	RevokeToken(ctx context.Context, tokenString string) error
	SessionTTL() time.Duration
}

// sessionClaims binds the token to the account row as well as the username,
// so a username later taken by another account does not inherit old sessions
type sessionClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     repository.TokenStore
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens repository.TokenStore, cfg *config.Config) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		secret:     []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTTL, // 60 minutes unless configured
		now:        time.Now,
	}
}

func (s *authService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Authenticate: verifies the credentials and stamps last_login on success.
// Unknown users, wrong passwords and inactive accounts all yield ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		// same amount of work as a real check
		auth.DummyVerify(password)
		logCtx.Warn("login failed: unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.Password) {
		logCtx.Warn("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}
	if !user.Active() {
		logCtx.Warn("login failed: account inactive")
		return nil, ErrInvalidCredentials
	}

	user, err = s.userRepo.UpdateLastLogin(ctx, user.ID, models.Now(s.now()))
	if err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	logCtx.WithField("user_id", user.ID).Info("user logged in")
	return user, nil
}

// IssueToken: HS256 token with the username as subject, valid for the session TTL
func (s *authService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ResolveToken: maps a session token back to its user.
// Any token problem, a revoked token, a vanished user or a username now held
// by a different account is ErrNotAuthenticated;
// storage failures are returned as they are.
func (s *authService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := s.parse(tokenString)
	if err != nil {
		logrus.WithError(err).Debug("rejected session token")
		return nil, ErrNotAuthenticated
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrNotAuthenticated
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if user.ID != claims.UserID {
		logrus.WithFields(logrus.Fields{"username": claims.Subject, "token_uid": claims.UserID, "user_id": user.ID}).
			Warn("session token belongs to a previous holder of this username")
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// RevokeToken: remembers the token id until expiry. Tokens that do not
// verify are already useless and are ignored.
func (s *authService) RevokeToken(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *authService) parse(tokenString string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" || claims.ID == "" || claims.UserID == 0 {
		return nil, errors.New("token is missing subject, id or uid")
	}
	return claims, nil
}
