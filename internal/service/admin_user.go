package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/logger"
)

// AdminUserService 管理员账号服务
type AdminUserService struct {
	admins *repository.AdminUserRepository
	logger *logger.Logger
}

// NewAdminUserService 创建管理员服务
func NewAdminUserService(admins *repository.AdminUserRepository, logger *logger.Logger) *AdminUserService {
	return &AdminUserService{admins: admins, logger: logger}
}

// List 分页获取管理员
func (s *AdminUserService) List(ctx context.Context, page repository.Page) ([]model.AdminUser, int64, error) {
	return s.admins.List(ctx, page)
}

// Get 根据ID获取管理员
func (s *AdminUserService) Get(ctx context.Context, id int64) (*model.AdminUser, error) {
	return s.admins.GetByID(ctx, id)
}

// Create 创建管理员，密码以bcrypt哈希存储
func (s *AdminUserService) Create(ctx context.Context, req types.AdminUserRequest) (*model.AdminUser, error) {
	for _, f := range []*string{req.Email, req.Username, req.Password, req.Name} {
		if f == nil || *f == "" {
			return nil, apperr.Validation(constants.MsgAdminFieldsNeeded)
		}
	}

	taken, err := s.admins.Taken(ctx, *req.Email, *req.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(constants.MsgAdminExists)
	}

	hash, err := hashPassword(*req.Password)
	if err != nil {
		return nil, err
	}
	a := &model.AdminUser{
		Email:    *req.Email,
		Username: *req.Username,
		Password: hash,
		Name:     *req.Name,
		IsActive: true,
	}
	if req.Role != nil {
		a.Role = *req.Role
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.admins.Create(ctx, a); err != nil {
		return nil, uniqueConflict(err, constants.MsgAdminExists)
	}
	s.logger.Info("管理员已创建", "admin_id", a.ID, "username", a.Username, "role", a.Role)
	return a, nil
}

// Update 修改管理员，提供密码时重新哈希
func (s *AdminUserService) Update(ctx context.Context, id int64, req types.AdminUserRequest) (*model.AdminUser, error) {
	a, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email, username := a.Email, a.Username
	if req.Email != nil {
		email = *req.Email
	}
	if req.Username != nil {
		username = *req.Username
	}
	if email != a.Email || username != a.Username {
		taken, err := s.admins.Taken(ctx, email, username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict(constants.MsgAdminExists)
		}
	}
	a.Email, a.Username = email, username

	if req.Password != nil && *req.Password != "" {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		a.Password = hash
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Role != nil {
		a.Role = *req.Role
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.admins.Update(ctx, a); err != nil {
		return nil, uniqueConflict(err, constants.MsgAdminExists)
	}
	return a, nil
}

// Delete 删除管理员
func (s *AdminUserService) Delete(ctx context.Context, id int64) error {
	return s.admins.Delete(ctx, id)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
