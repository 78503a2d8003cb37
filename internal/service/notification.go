package service

import (
	"context"
	"fmt"
	"time"

	"kazanion/internal/apperr"
	"kazanion/internal/constants"
	"kazanion/internal/model"
	"kazanion/internal/repository"
	"kazanion/internal/types"
	"kazanion/pkg/async"
	"kazanion/pkg/email"
	"kazanion/pkg/logger"
)

// NotificationService 通知服务
type NotificationService struct {
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
	sender        email.Sender
	worker        *async.Worker
	logger        *logger.Logger
	now           func() time.Time
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	notifications *repository.NotificationRepository,
	users *repository.UserRepository,
	sender email.Sender,
	worker *async.Worker,
	logger *logger.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		sender:        sender,
		worker:        worker,
		logger:        logger,
		now:           time.Now,
	}
}

// List 分页获取通知
func (s *NotificationService) List(ctx context.Context, page repository.Page) ([]model.Notification, int64, error) {
	return s.notifications.List(ctx, page)
}

// Get 根据ID获取通知
func (s *NotificationService) Get(ctx context.Context, id int64) (*model.Notification, error) {
	return s.notifications.GetByID(ctx, id)
}

// Create 创建通知
func (s *NotificationService) Create(ctx context.Context, req types.NotificationRequest) (*model.Notification, error) {
	if err := requireText(req.Message, constants.MsgMessageRequired); err != nil {
		return nil, err
	}
	n := &model.Notification{}
	s.apply(n, req)
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update 修改通知
func (s *NotificationService) Update(ctx context.Context, id int64, req types.NotificationRequest) (*model.Notification, error) {
	if req.Message != nil {
		if err := requireText(req.Message, constants.MsgMessageRequired); err != nil {
			return nil, err
		}
	}
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(n, req)
	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete 删除通知
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.notifications.Delete(ctx, id)
}

// Send 标记通知已发送，并异步向目标用户发送邮件。未指定目标时发给全部启用用户。
func (s *NotificationService) Send(ctx context.Context, id int64) (*model.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recipients, err := s.recipients(ctx, n)
	if err != nil {
		return nil, err
	}

	sentAt := s.now()
	if err := s.notifications.MarkSent(ctx, n.ID, sentAt); err != nil {
		return nil, fmt.Errorf("标记通知发送状态失败: %w", err)
	}
	n.IsSent = true
	n.SentAt = &sentAt

	queued := s.dispatch(n, recipients)
	s.logger.Info("通知已发送", "notification_id", n.ID, "recipients", len(recipients), "emails_queued", queued)
	return n, nil
}

// recipients 解析通知的目标用户
func (s *NotificationService) recipients(ctx context.Context, n *model.Notification) ([]model.User, error) {
	ids := n.Recipients()
	if len(ids) == 0 {
		return s.users.ListActive(ctx)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperr.Validation(constants.MsgNotificationNoTarget)
	}
	return users, nil
}

// dispatch 为每个有邮箱的用户提交一个发送任务，返回入队数量
func (s *NotificationService) dispatch(n *model.Notification, recipients []model.User) int {
	if s.sender == nil || !s.sender.Enabled() || s.worker == nil {
		return 0
	}

	queued := 0
	for _, u := range recipients {
		if u.Email == "" {
			continue
		}
		data := email.NotificationData{
			To:       u.Email,
			UserName: u.Name,
			Title:    n.Title,
			Message:  n.Message,
		}
		err := s.worker.Submit(async.Task{
			Name:     fmt.Sprintf("notification-%d-user-%d", n.ID, u.ID),
			Timeout:  30 * time.Second,
			RetryMax: 3,
			Handler: func(ctx context.Context) error {
				return s.sender.SendNotification(data)
			},
		})
		if err != nil {
			s.logger.Warn("通知邮件入队失败", "notification_id", n.ID, "user_id", u.ID, err)
			continue
		}
		queued++
	}
	return queued
}

func (s *NotificationService) apply(n *model.Notification, req types.NotificationRequest) {
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.Type != nil {
		n.Type = *req.Type
	}
	if req.TargetUserID != nil {
		n.TargetUserID = req.TargetUserID
	}
	if req.TargetUserIDs != nil {
		n.TargetUserIDs = model.Int64List(req.TargetUserIDs)
	}
	if req.IsRead != nil {
		if *req.IsRead && !n.IsRead {
			now := s.now()
			n.ReadAt = &now
		}
		n.IsRead = *req.IsRead
	}
}
