package service

import (
	"context"
	"time"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/internal/utils"
	"kazanion/pkg/logger"
	"kazanion/pkg/token"
)

// AdminSession 管理员登录结果
type AdminSession struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Admin     *model.AdminUser `json:"admin"`
}

// AuthService 登录与注册
type AuthService struct {
	admins *repository.AdminUserRepository
	users  *repository.UserRepository
	tokens *token.Manager
	logger *logger.Logger
	now    func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(admins *repository.AdminUserRepository, users *repository.UserRepository, tokens *token.Manager, logger *logger.Logger) *AuthService {
	return &AuthService{admins: admins, users: users, tokens: tokens, logger: logger, now: time.Now}
}

// AdminLogin 管理员登录，成功后签发令牌
func (s *AuthService) AdminLogin(ctx context.Context, req types.LoginRequest) (*AdminSession, error) {
	identifier := req.Identifier()
	if identifier == "" || req.Password == "" {
		return nil, apperr.Validation(constants.MsgLoginFieldsRequired)
	}

	admin, err := s.admins.GetByLogin(ctx, identifier)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized(constants.MsgInvalidCredentials)
		}
		return nil, err
	}
	if !checkPassword(admin.Password, req.Password) {
		return nil, apperr.Unauthorized(constants.MsgInvalidCredentials)
	}
	if !admin.IsActive {
		return nil, apperr.Unauthorized(constants.MsgAccountDisabled)
	}

	tok, exp, err := s.tokens.Generate(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.admins.TouchLogin(ctx, admin.ID, now); err != nil {
		s.logger.Warn("更新管理员登录时间失败", "admin_id", admin.ID, err)
	}
	admin.LastLogin = &now

	s.logger.Info("管理员登录", "admin_id", admin.ID, "username", admin.Username)
	return &AdminSession{Token: tok, ExpiresAt: exp, Admin: admin}, nil
}

// Register App用户注册，birth_date 在此处一次性换算为年龄
func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest, ip string) (*model.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(constants.MsgEmailExists)
	}
	taken, err := s.users.UsernameTaken(ctx, req.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(constants.MsgUsernameExists)
	}

	age := req.Age
	if req.BirthDate != "" {
		a, err := utils.AgeFromBirthDate(req.BirthDate, s.now())
		if err != nil {
			return nil, apperr.Validation(constants.MsgInvalidBirthDate)
		}
		age = &a
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:          req.Email,
		Username:       req.Username,
		Password:       hash,
		Name:           req.Name,
		Age:            age,
		Gender:         req.Gender,
		City:           req.City,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		IPAddress:      ip,
		ConsentVersion: req.ConsentVersion,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, uniqueConflict(err, constants.MsgEmailExists)
	}
	s.logger.Info("用户注册", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Login App用户登录
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (*model.User, error) {
	identifier := req.Identifier()
	if identifier == "" || req.Password == "" {
		return nil, apperr.Validation(constants.MsgLoginFieldsRequired)
	}

	u, err := s.users.GetByLogin(ctx, identifier)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized(constants.MsgInvalidCredentials)
		}
		return nil, err
	}
	if !checkPassword(u.Password, req.Password) {
		return nil, apperr.Unauthorized(constants.MsgInvalidCredentials)
	}
	if !u.IsActive {
		return nil, apperr.Unauthorized(constants.MsgAccountDisabled)
	}

	now := s.now()
	if err := s.users.TouchLogin(ctx, u.ID, now); err != nil {
		s.logger.Warn("更新用户登录时间失败", "user_id", u.ID, err)
	}
	u.LastLoginAt = &now
	return u, nil
}
