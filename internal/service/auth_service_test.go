package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cnc_simulator/internal/models"
	"cnc_simulator/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type operatorRepoStub struct {
	created []models.Operator
	op      *models.Operator
	getErr  error
	create  func(op models.Operator) (int, error)
}

func (r *operatorRepoStub) Create(ctx context.Context, op models.Operator) (int, error) {
	r.created = append(r.created, op)
	if r.create != nil {
		return r.create(op)
	}
	return len(r.created), nil
}

func (r *operatorRepoStub) GetByUsername(ctx context.Context, username string) (*models.Operator, error) {
	return r.op, r.getErr
}

var testAuth = AuthConfig{SigningKey: "test-key", TokenTTL: time.Minute}

func operatorWithPassword(t *testing.T, id int, password string) *models.Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &models.Operator{ID: id, Username: "operator", PasswordHash: string(hash)}
}

func newTestAuthService(repo repository.OperatorRepo) *AuthService {
	svc := NewAuthService(repo, testAuth)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestAuthService_SignUp(t *testing.T) {
	repo := &operatorRepoStub{}
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "  operator ", "s3cret"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	got := repo.created[0]
	if got.Username != "operator" {
		t.Fatalf("username not trimmed: %q", got.Username)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Fatalf("created_at = %v", got.CreatedAt)
	}
	if got.PasswordHash == "s3cret" || bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("s3cret")) != nil {
		t.Fatalf("stored value is not a bcrypt hash of the password")
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	svc := newTestAuthService(&operatorRepoStub{})
	ctx := context.Background()

	long := make([]byte, maxUsernameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	for _, tc := range []struct{ user, pass string }{
		{"", "s3cret"},
		{"   ", "s3cret"},
		{string(long), "s3cret"},
		{"setter", "   "},
		{"setter", "short"},
	} {
		if _, err := svc.SignUp(ctx, tc.user, tc.pass); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("SignUp(%q, %q): got %v, want ErrInvalidInput", tc.user, tc.pass, err)
		}
	}
}

func TestAuthService_SignUp_RepoErrors(t *testing.T) {
	ctx := context.Background()

	taken := &operatorRepoStub{create: func(op models.Operator) (int, error) {
		return 0, repository.ErrOperatorExists
	}}
	if _, err := newTestAuthService(taken).SignUp(ctx, "operator", "s3cret"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate: got %v, want ErrInvalidInput", err)
	}

	boom := errors.New("database is locked")
	broken := &operatorRepoStub{create: func(op models.Operator) (int, error) { return 0, boom }}
	_, err := newTestAuthService(broken).SignUp(ctx, "operator", "s3cret")
	if !errors.Is(err, boom) || errors.Is(err, ErrInvalidInput) {
		t.Fatalf("storage failure: got %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&operatorRepoStub{op: operatorWithPassword(t, 9, "s3cret")})

	token, err := svc.GenerateToken(context.Background(), "operator", "s3cret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, err := svc.ParseToken(token)
	if err != nil || id != 9 {
		t.Fatalf("ParseToken = %d, %v", id, err)
	}

	other := NewAuthService(&operatorRepoStub{}, AuthConfig{SigningKey: "other-key"})
	other.now = func() time.Time { return testNow }
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another key: got %v", err)
	}
}

func TestAuthService_TokenExpires(t *testing.T) {
	svc := newTestAuthService(&operatorRepoStub{op: operatorWithPassword(t, 2, "s3cret")})
	token, err := svc.GenerateToken(context.Background(), "operator", "s3cret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	svc.now = func() time.Time { return testNow.Add(testAuth.TokenTTL + time.Second) }
	if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: got %v", err)
	}
}

func TestAuthService_GenerateToken_Failures(t *testing.T) {
	ctx := context.Background()

	if _, err := newTestAuthService(&operatorRepoStub{}).GenerateToken(ctx, "ghost", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown operator: got %v", err)
	}

	svc := newTestAuthService(&operatorRepoStub{op: operatorWithPassword(t, 1, "s3cret")})
	if _, err := svc.GenerateToken(ctx, "operator", "wrong!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}

	boom := errors.New("db down")
	_, err := newTestAuthService(&operatorRepoStub{getErr: boom}).GenerateToken(ctx, "operator", "s3cret")
	if !errors.Is(err, boom) {
		t.Fatalf("repo error: got %v", err)
	}
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc := newTestAuthService(&operatorRepoStub{})
	key := []byte(testAuth.SigningKey)
	valid := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "3",
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Minute)),
	}

	if _, err := svc.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("malformed token: got %v", err)
	}

	foreign := valid
	foreign.Issuer = "someone-else"
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &operatorClaims{RegisteredClaims: foreign}).SignedString(key)
	if _, err := svc.ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign issuer accepted: %v", err)
	}

	badSubject := valid
	badSubject.Subject = "operator"
	tok, _ = jwt.NewWithClaims(jwt.SigningMethodHS256, &operatorClaims{RegisteredClaims: badSubject}).SignedString(key)
	if _, err := svc.ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("non-numeric subject accepted: %v", err)
	}

	tok, _ = jwt.NewWithClaims(jwt.SigningMethodHS512, &operatorClaims{RegisteredClaims: valid}).SignedString(key)
	if _, err := svc.ParseToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("HS512 token accepted: %v", err)
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &operatorClaims{RegisteredClaims: valid}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.ParseToken(none); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unsigned token accepted: %v", err)
	}
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(&operatorRepoStub{}, AuthConfig{SigningKey: "k"})
	if svc.ttl != defaultTokenTTL {
		t.Fatalf("ttl = %v", svc.ttl)
	}
}
