package service

import (
	"ecopulse_backend/internal/config"
	"ecopulse_backend/internal/model"
	"ecopulse_backend/internal/repository"
	"ecopulse_backend/internal/util"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	Progression *ProgressionService
	JWT         config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, progression *ProgressionService, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		Progression: progression,
		JWT:         jwtCfg,
	}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates the account and initializes the user's learning
// path so the first node is current immediately after signup.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	if _, err := s.UserRepo.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     model.Resident,
		Hearts:   s.Progression.Game.MaxHearts,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.Progression.StartPath(user.ID); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if user.Disabled {
		return nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, util.ErrUserNotFound
	}

	// A login counts as a session for streak and heart refill purposes.
	user, err = s.Progression.UpdateDailyStats(user.ID)
	if err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}
