package service

import (
	"context"
	"fmt"
	"strings"

	"runway-tickets/internal/identity"
	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// 第一次登入時建立使用者，已存在則不動
	SyncUser(ctx context.Context, req model.SyncUserRequest) (bool, error)
	// 任何錯誤都回傳 false
	IsAdmin(ctx context.Context, userID string) bool
	// 以 authorization code 換 session 並同步使用者
	CompleteSignIn(ctx context.Context, code, codeVerifier string) (*identity.Session, error)
	MakeAdmin(ctx context.Context, email string) (*model.User, error)
}

type UserServiceImpl struct {
	repository repository.UserRepository
	exchanger  identity.CodeExchanger
}

func NewUserService(userRepository repository.UserRepository, exchanger identity.CodeExchanger) UserService {
	return &UserServiceImpl{
		repository: userRepository,
		exchanger:  exchanger,
	}
}

func (s *UserServiceImpl) SyncUser(ctx context.Context, req model.SyncUserRequest) (bool, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Email) == "" {
		return false, apperrors.ErrMissingFields
	}
	id, err := parseID(req.UserID)
	if err != nil {
		return false, err
	}

	displayName := identity.EmailLocalPart(req.Email)
	if !isBlank(req.DisplayName) {
		displayName = *req.DisplayName
	}

	created, err := s.repository.InsertIfAbsent(ctx, &model.User{
		ID:          id,
		Email:       req.Email,
		DisplayName: &displayName,
		Role:        model.UserRoleViewer,
	})
	if err != nil {
		return false, err
	}
	if created {
		logger.WithComponent("service").Info("user synced", zap.String("user_id", id.String()))
	}
	return created, nil
}

func (s *UserServiceImpl) IsAdmin(ctx context.Context, userID string) bool {
	id, err := uuid.Parse(userID)
	if err != nil {
		return false
	}
	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		logger.WithComponent("service").Debug("admin check failed", zap.String("user_id", userID), zap.Error(err))
		return false
	}
	return user.Role == model.UserRoleAdmin
}

func (s *UserServiceImpl) CompleteSignIn(ctx context.Context, code, codeVerifier string) (*identity.Session, error) {
	if code == "" {
		return nil, apperrors.ErrMissingFields
	}
	session, err := s.exchanger.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		return nil, err
	}

	name := session.User.DisplayName()
	if _, err := s.SyncUser(ctx, model.SyncUserRequest{
		UserID:      session.User.ID.String(),
		Email:       session.User.Email,
		DisplayName: &name,
	}); err != nil {
		return nil, fmt.Errorf("sync user: %w", err)
	}
	return session, nil
}

func (s *UserServiceImpl) MakeAdmin(ctx context.Context, email string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.ErrMissingFields
	}
	// 使用者必須先登入過一次才會有資料
	user, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Role == model.UserRoleAdmin && user.IsAdmin {
		return user, nil
	}
	return s.repository.SetRoleByEmail(ctx, email, model.UserRoleAdmin)
}
