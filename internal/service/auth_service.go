package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cnc_simulator/internal/models"
	"cnc_simulator/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = time.Hour
	tokenIssuer       = "cnc-simulator"
	minPasswordLength = 6
	maxUsernameLength = 64
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthConfig holds the JWT signing parameters.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService registers operators and issues the bearer tokens required by
// the command and log endpoints.
type AuthService struct {
	operators repository.OperatorRepo
	key       []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(repo repository.OperatorRepo, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{operators: repo, key: []byte(cfg.SigningKey), ttl: ttl, now: time.Now}
}

// operatorClaims identifies the operator by ID (subject) and username.
type operatorClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// SignUp validates the credentials, hashes the password and stores a new
// operator.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return 0, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.operators.Create(ctx, models.Operator{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	})
	if errors.Is(err, repository.ErrOperatorExists) {
		return 0, fmt.Errorf("%w: username %q is taken", ErrInvalidInput, username)
	}
	return id, err
}

func validateCredentials(username, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is empty", ErrInvalidInput)
	case len(username) > maxUsernameLength:
		return fmt.Errorf("%w: username longer than %d characters", ErrInvalidInput, maxUsernameLength)
	case len(strings.TrimSpace(password)) < minPasswordLength:
		return fmt.Errorf("%w: password shorter than %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// GenerateToken checks credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	op, err := s.operators.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if op == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(op)
}

// ParseToken validates accessToken and returns the operator ID it was issued to.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	var claims operatorClaims
	token, err := jwt.ParseWithClaims(accessToken, &claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.Subject)
	}
	return id, nil
}

func (s *AuthService) keyFunc(*jwt.Token) (interface{}, error) {
	return s.key, nil
}

func (s *AuthService) issueToken(op *models.Operator) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.Itoa(op.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: op.Username,
	})
	return token.SignedString(s.key)
}
