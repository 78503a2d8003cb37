package service

import (
	"errors"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/repository"
)

// 缓存键
const (
	cacheKeyDashboard = "dashboard:stats"
	cacheKeySettings  = "settings:all"
)

// defaultUpdateAttempts 商品更新遇到版本冲突时的最大尝试次数
const defaultUpdateAttempts = 3

// uniqueConflict 将唯一约束冲突转换为业务错误
func uniqueConflict(err error, msg string) error {
	if repository.IsUniqueViolation(err) {
		return apperr.Conflict(msg)
	}
	return err
}

// isNotFound 是否为资源不存在
func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}

func requireText(v *string, msg string) error {
	if v == nil || *v == "" {
		return apperr.Validation(msg)
	}
	return nil
}

var errConcurrentUpdate = apperr.Conflict(constants.MsgConcurrentUpdate)
