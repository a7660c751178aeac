package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/logger"
	"ecommerce-backend/internal/mail"
	"ecommerce-backend/internal/user/model"
	"ecommerce-backend/internal/user/repository"
	appErrors "ecommerce-backend/pkg/errors"
	"ecommerce-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MailDispatcher accepts messages for asynchronous delivery.
type MailDispatcher interface {
	Enqueue(ctx context.Context, msg mail.Message) error
}

type UserService struct {
	repo   *repository.UserRepository
	mailer MailDispatcher
	config *config.Config
}

func NewService(repo *repository.UserRepository, mailer MailDispatcher, cfg *config.Config) *UserService {
	return &UserService{
		repo:   repo,
		mailer: mailer,
		config: cfg,
	}
}

func (s *UserService) Register(ctx context.Context, request *model.RegisterRequest) (*model.AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(request.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:     request.Name,
		Email:    request.Email,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *UserService) Login(ctx context.Context, request *model.LoginRequest) (*model.AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByEmailWithPassword(ctx, request.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.Password, request.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

func (s *UserService) ForgotPassword(ctx context.Context, request *model.ForgotPasswordRequest, resetBaseURL string) error {
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, request.Email)
	if err != nil {
		return err
	}

	plaintext, hashed, expiresAt, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.repo.SetResetToken(ctx, user.ID, hashed, expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", resetBaseURL, plaintext)
	msg := mail.Message{
		To:      user.Email,
		Subject: "Ecommerce Password Recovery",
		Body: fmt.Sprintf(
			"Your password reset link is:\n\n%s\n\nThe link expires in 15 minutes. "+
				"If you have not requested this email then, please ignore it.", resetURL),
	}

	if err := s.mailer.Enqueue(ctx, msg); err != nil {
		// The user must not be left holding a token that was never delivered.
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			logger.Error("Failed to clear reset token after mail failure",
				zap.String("user_id", user.ID.String()),
				zap.Error(clearErr),
			)
		}
		return appErrors.ErrMailDispatchFailed
	}

	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token string, request *model.ResetPasswordRequest) (*model.AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if request.Password != request.ConfirmPassword {
		return nil, appErrors.ErrPasswordMismatch
	}

	user, err := s.repo.GetUserByResetToken(ctx, utils.HashResetToken(token))
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, request *model.ChangePasswordRequest) (*model.AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if request.NewPassword != request.ConfirmPassword {
		return nil, appErrors.ErrPasswordMismatch
	}

	user, err := s.repo.GetUserByIDWithPassword(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(user.Password, request.OldPassword) {
		return nil, appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, request *model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Email != nil {
		user.Email = *request.Email
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *UserService) UpdateRole(ctx context.Context, userID uuid.UUID, request *model.UpdateRoleRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	return s.repo.UpdateRole(ctx, userID, request.Role)
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteUser(ctx, userID)
}

func (s *UserService) issueSession(user *model.User) (*model.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	expiryHours := s.config.JWT.ExpiryHours
	if expiryHours <= 0 {
		expiryHours = 24
	}

	return &model.AuthResponse{
		User:      user.ToResponse(),
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix(),
	}, nil
}
