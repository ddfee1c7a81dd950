package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
	"github.com/Dosada05/fitness-challenge/utils"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type RegisterInput struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Gender   *string `json:"gender,omitempty"`
	AgeGroup *string `json:"age_group,omitempty"`
	Location *string `json:"location,omitempty"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if input.FullName == "" {
		return nil, ErrFullNameRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !utils.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}
	gender, err := normalizeEnum(input.Gender, models.ValidGender, ErrInvalidGender)
	if err != nil {
		return nil, err
	}
	ageGroup, err := normalizeEnum(input.AgeGroup, models.ValidAgeGroup, ErrInvalidAgeGroup)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Email:        input.Email,
		Gender:       gender,
		AgeGroup:     ageGroup,
		Location:     normalizeOptional(input.Location),
	}

	// Uniqueness is enforced by the users table constraints, so two
	// concurrent registrations with the same username race safely: one wins,
	// the other surfaces here as a conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUsernameTaken
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// normalizeEnum turns blank optional values into nil and rejects values
// outside the allowed set.
func normalizeEnum(v *string, valid func(string) bool, invalidErr error) (*string, error) {
	v = normalizeOptional(v)
	if v == nil {
		return nil, nil
	}
	if !valid(*v) {
		return nil, invalidErr
	}
	return v, nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
