package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

type UserService struct {
	users            users.Repository
	jwtSecret        []byte
	validityDuration time.Duration
	cost             int
}

// NewUserService builds a UserService signing tokens with secretKey.
// bcryptCost 0 means bcrypt.DefaultCost.
func NewUserService(r users.Repository, secretKey string, validity time.Duration, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:            r,
		jwtSecret:        []byte(secretKey),
		validityDuration: validity,
		cost:             bcryptCost,
	}
}

func validateRegistration(email, password string) error {
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	return nil
}

// Register creates an account. A taken email yields
// common.ErrorAlreadyExists, bad input common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := validateRegistration(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed bearer token. Unknown
// email and wrong password both yield common.ErrorInvalidLoginPassword.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidLoginPassword
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorInvalidLoginPassword
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.validityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to a user id. The user must still
// exist.
func (s *UserService) Authenticate(ctx context.Context, token string) (int64, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return 0, err
	}
	if _, err := s.users.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrInvalidToken
		}
		return 0, err
	}
	return id, nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
