package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/fitness-challenge/models"
	"github.com/Dosada05/fitness-challenge/repositories"
	"github.com/Dosada05/fitness-challenge/storage"
	"github.com/Dosada05/fitness-challenge/utils"
)

type UserService interface {
	GetProfile(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, id int, contentType string, reader io.Reader) (*models.User, error)
}

type UpdateProfileInput struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Gender   *string `json:"gender,omitempty"`
	AgeGroup *string `json:"age_group,omitempty"`
	Location *string `json:"location,omitempty"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

// NewUserService accepts a nil uploader; avatar uploads are then reported as
// disabled instead of failing at startup.
func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{userRepo: userRepo, uploader: uploader}
}

func (s *userService) GetProfile(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	s.fillAvatarURL(user)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int, input UpdateProfileInput) (*models.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.TrimSpace(input.Email)

	if input.FullName == "" {
		return nil, ErrFullNameRequired
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

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.Gender = gender
	user.AgeGroup = ageGroup
	user.Location = normalizeOptional(input.Location)

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrEmailTaken
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.PasswordHash = ""
	s.fillAvatarURL(user)
	return user, nil
}

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (s *userService) UploadAvatar(ctx context.Context, id int, contentType string, reader io.Reader) (*models.User, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported avatar content type %q", ErrValidationFailed, contentType)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("avatars/users/%d/%d%s", id, time.Now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	oldKey := user.AvatarKey
	if err := s.userRepo.UpdateAvatarKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store avatar key: %w", err)
	}

	// Best effort: a dangling old object is harmless.
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	user.AvatarKey = &result.Key
	user.PasswordHash = ""
	s.fillAvatarURL(user)
	return user, nil
}

func (s *userService) fillAvatarURL(user *models.User) {
	if s.uploader == nil || user.AvatarKey == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*user.AvatarKey); url != "" {
		user.AvatarURL = &url
	}
}
