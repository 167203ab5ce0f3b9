package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edvin/insightcrm/internal/model"
	"github.com/edvin/insightcrm/internal/platform"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, name, customer_limit, created_at, updated_at`

// AuthService registers users, checks credentials and issues access tokens.
type AuthService struct {
	db        DB
	jwtSecret []byte
	jwtIssuer string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(db DB, jwtSecret, jwtIssuer string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register creates a user and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, email, password string, name *string) (*model.User, string, error) {
	var exists bool
	if err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email,
	).Scan(&exists); err != nil {
		return nil, "", fmt.Errorf("check user email: %w", err)
	}
	if exists {
		return nil, "", &ConflictError{Resource: "user", Fields: []string{"email"}}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		platform.NewID(), email, hash, nullIfEmpty(name),
	))
	if err != nil {
		return nil, "", translateWriteError(err, "user", "create user")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	if !verifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// IssueToken creates a signed HS256 JWT for the given user.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := s.now()
	claims := model.JWTClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*model.JWTClaims, error) {
	var claims model.JWTClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(*jwt.Token) (any, error) { return s.jwtSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &claims, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CustomerLimit,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
