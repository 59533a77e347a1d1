package service

import (
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	LocationRepo *repository.LocationRepository
	Storage      StorageProvider
}

func NewUserService(userRepo *repository.UserRepository, locationRepo *repository.LocationRepository, storage StorageProvider) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		LocationRepo: locationRepo,
		Storage:      storage,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Name       string `json:"name" binding:"omitempty,min=2,max=64"`
	LocationID *uint  `json:"locationId"`
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.LocationID != nil {
		if _, err := s.LocationRepo.FindByID(*input.LocationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrLocationNotFound
			}
			return nil, err
		}
		user.LocationID = input.LocationID
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CompleteOnboarding flips the flag once; later calls are no-ops so
// the client can retry safely.
func (s *UserService) CompleteOnboarding(userID uint) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if user.HasCompletedOnboarding {
		return user, nil
	}

	user.HasCompletedOnboarding = true
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(userID uint, file *multipart.FileHeader) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	mimeType, err := util.ValidateMimeType(src, []string{"image/"})
	src.Close()
	if err != nil {
		return nil, fmt.Errorf("unsupported avatar type %s: %w", mimeType, err)
	}

	key := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.Storage.SaveUpload(file, key)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}
