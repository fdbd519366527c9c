package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/logistics-api/internal/domain/entity"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/pkg/apperror"
	"github.com/sangkips/logistics-api/pkg/utils"
)

// AuthService handles staff authentication
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{staffRepo: staffRepo, jwtManager: jwtManager}
}

// LoginInput represents the login input. Login is a username or an email.
type LoginInput struct {
	Login    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Staff        *entity.Staff
	AccessToken  string
	RefreshToken string
}

// Login authenticates a staff member and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	staff, err := s.staffRepo.GetByLogin(ctx, input.Login)
	if err != nil {
		return nil, err
	}
	if staff == nil || !utils.CheckPassword(staff.Password, input.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !staff.IsActiveStaff {
		return nil, apperror.ErrInactiveAccount
	}

	now := time.Now()
	staff.LastLoginAt = &now
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	return s.issue(staff)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !staff.IsActiveStaff {
		return nil, apperror.ErrInactiveAccount
	}

	return s.issue(staff)
}

// GetProfile returns the signed-in staff member
func (s *AuthService) GetProfile(ctx context.Context, staffID uuid.UUID) (*entity.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff, nil
}

func (s *AuthService) issue(staff *entity.Staff) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Username, staff.EmployeeID, string(staff.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Staff:        staff,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
