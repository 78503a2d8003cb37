package scheduler

import (
	"context"
	"sync"
	"time"

	"kazanion/internal/model"
	"kazanion/pkg/logger"
)

// 计划参数
const (
	snapshotHour      = 23
	snapshotMinute    = 55
	storyExpiryPeriod = 10 * time.Minute
)

// SnapshotTaker 写入每日统计快照
type SnapshotTaker interface {
	TakeSnapshot(ctx context.Context, day time.Time) (*model.Analytics, error)
}

// StoryExpirer 下线过期故事
type StoryExpirer interface {
	DeactivateExpired(ctx context.Context) (int64, error)
}

// Scheduler 定时任务调度器
type Scheduler struct {
	snapshots SnapshotTaker
	stories   StoryExpirer
	logger    *logger.Logger
	quit      chan struct{}
	wg        sync.WaitGroup

	now         func() time.Time
	storyPeriod time.Duration
}

// NewScheduler 创建调度器实例
func NewScheduler(snapshots SnapshotTaker, stories StoryExpirer, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		snapshots:   snapshots,
		stories:     stories,
		logger:      logger,
		quit:        make(chan struct{}),
		now:         time.Now,
		storyPeriod: storyExpiryPeriod,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() {
	s.wg.Add(2)
	go s.snapshotLoop()
	go s.storyExpiryLoop()

	s.logger.Info("调度器启动")
}

// Stop 停止调度器并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
	s.logger.Info("调度器停止")
}

// nextDailyRun 下一次 hour:minute 的时间，已经过了则为明天
func nextDailyRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// snapshotLoop 每天23:55写入统计快照
func (s *Scheduler) snapshotLoop() {
	defer s.wg.Done()

	for {
		next := nextDailyRun(s.now(), snapshotHour, snapshotMinute)
		s.logger.Info("统计快照计划", "nextRunTime", next.Format("2006-01-02 15:04:05"))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-timer.C:
			s.takeSnapshot(next)
		case <-s.quit:
			timer.Stop()
			return
		}
	}
}

// storyExpiryLoop 启动时执行一次，之后每10分钟下线过期故事
func (s *Scheduler) storyExpiryLoop() {
	defer s.wg.Done()

	s.expireStories()

	ticker := time.NewTicker(s.storyPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireStories()
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) takeSnapshot(day time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := s.snapshots.TakeSnapshot(ctx, day); err != nil {
		s.logger.Error("统计快照失败", "error", err)
	}
}

func (s *Scheduler) expireStories() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.stories.DeactivateExpired(ctx)
	if err != nil {
		s.logger.Error("下线过期故事失败", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("过期故事已下线", "count", n)
	}
}
