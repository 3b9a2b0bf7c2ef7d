package auth

import (
	"context"
	"errors"
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/request"
	"github.com/H4ckEd666/Twitter-clone-app/internal/users"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of a session token and its cookie.
const TokenTTL = 15 * 24 * time.Hour

type Service struct {
	secret []byte
	users  *users.Service
}

func NewService(secret string, users *users.Service) *Service {
	return &Service{
		secret: []byte(secret),
		users:  users,
	}
}

// Signup creates an account. Every check runs before the password is hashed.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (users.User, string, error) {
	if !request.ValidEmail(req.Email) {
		return users.User{}, "", apperr.Validation("Invalid email format")
	}
	taken, err := s.users.UsernameTaken(ctx, req.Username, "")
	if err != nil {
		return users.User{}, "", err
	}
	if taken {
		return users.User{}, "", apperr.Validation("Unable to create account")
	}
	taken, err = s.users.EmailTaken(ctx, req.Email, "")
	if err != nil {
		return users.User{}, "", err
	}
	if taken {
		return users.User{}, "", apperr.Validation("Unable to create account")
	}
	if len(req.Password) < users.MinPasswordLength {
		return users.User{}, "", apperr.Validation("Password must be at least %d characters long", users.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return users.User{}, "", err
	}
	user, err := s.users.Create(ctx, users.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	})
	if err != nil {
		return users.User{}, "", err
	}

	token, err := s.signToken(user.ID, TokenTTL)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (users.User, string, error) {
	invalid := apperr.Validation("Invalid username or password")

	creds, err := s.users.Credentials(ctx, req.Username)
	if apperr.IsKind(err, apperr.KindNotFound) {
		return users.User{}, "", invalid
	}
	if err != nil {
		return users.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)); err != nil {
		return users.User{}, "", invalid
	}

	user, err := s.users.ByID(ctx, creds.ID)
	if err != nil {
		return users.User{}, "", err
	}
	token, err := s.signToken(user.ID, TokenTTL)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// Me returns the authenticated user, which may have been deleted since the
// token was issued.
func (s *Service) Me(ctx context.Context, userID string) (users.User, error) {
	return s.users.ByID(ctx, userID)
}

func (s *Service) signToken(userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

var parseClaimsFn = jwt.ParseWithClaims

func parseToken(token string, secret []byte) (*Claims, error) {
	parsed, err := parseClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
