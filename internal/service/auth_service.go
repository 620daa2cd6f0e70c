package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devconnector/internal/model"
	"devconnector/internal/util"
	"devconnector/pkg/apierror"
)

const gravatarSize = 200

// AuthService handles registration, login and whoami. Both registration
// and login end in a freshly issued token so the client is logged in
// right away.
type AuthService struct {
	users  UserRepo
	tokens *TokenService
}

func NewAuthService(users UserRepo, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var fieldErrs []apierror.FieldError
	if name == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Name is required", Param: "name"})
	}
	if !validEmail(email) {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if len(req.Password) < 6 {
		fieldErrs = append(fieldErrs, apierror.FieldError{Msg: "Please enter a password with 6 or more characters", Param: "password"})
	}
	if len(fieldErrs) > 0 {
		return "", apierror.Validation(fieldErrs...)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", apierror.Validation(apierror.FieldError{Msg: "User already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       util.GravatarURL(email, gravatarSize),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can win the unique-email race.
		if errors.Is(err, model.ErrEmailTaken) {
			return "", apierror.Validation(apierror.FieldError{Msg: "User already exists"})
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", invalidCredentials()
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", invalidCredentials()
	}

	return s.tokens.Issue(user.ID)
}

// CurrentUser returns the authenticated identity, password hash excluded
// by the model's JSON mapping.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.User{}, apierror.Unauthorized("Token is not valid")
		}
		return model.User{}, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}

func invalidCredentials() error {
	return apierror.Validation(apierror.FieldError{Msg: "Invalid Credentials"})
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
