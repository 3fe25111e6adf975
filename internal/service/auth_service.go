package service

import (
	"fmt"
	"time"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/logger"
	"hotel-management-backend/pkg/utils"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
}

func NewAuthService(userRepo *repository.UserRepository, auditRepo *repository.AuditRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(username)
	if err != nil {
		return nil, apperrors.Validationf("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, apperrors.Validationf("invalid credentials")
	}

	response, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.audit(&user.ID, "user_login", fmt.Sprintf("User %s logged in", username))
	return response, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", apperrors.Validationf("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", apperrors.Validationf("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Username, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// Register creates a new staff account. Only admins reach this path; the
// role defaults to staff when not given.
func (s *AuthService) Register(username, password, role string) (*LoginResponse, error) {
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleAdmin && role != models.RoleStaff {
		return nil, apperrors.Validationf("role must be admin or staff")
	}
	if len(password) < 6 {
		return nil, apperrors.Validationf("password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindUserByUsername(username)
	if err == nil && existingUser != nil {
		return nil, apperrors.Conflictf("username %s already exists", username)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	response, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.audit(&user.ID, "user_registration", fmt.Sprintf("User %s registered with role %s", username, role))
	return response, nil
}

// issueTokens builds the access/refresh token pair and stores the refresh
// token hash.
func (s *AuthService) issueTokens(user *models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}
	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

func (s *AuthService) audit(userID *uint, action, details string) {
	if err := s.auditRepo.CreateAuditLog(userID, action, details); err != nil {
		logger.Get().Warnf("Failed to write audit log (%s): %v", action, err)
	}
}
