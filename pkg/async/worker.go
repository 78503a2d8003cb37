package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"kazanion/pkg/logger"
)

var (
	// ErrQueueFull 任务队列已满
	ErrQueueFull = errors.New("async: task queue is full")
	// ErrStopped 工作器已停止
	ErrStopped = errors.New("async: worker stopped")
)

// Task 表示一个异步任务
type Task struct {
	Name     string
	Handler  func(ctx context.Context) error
	Timeout  time.Duration
	RetryMax int
}

// Worker 固定协程数的异步任务处理器
type Worker struct {
	taskQueue chan Task
	logger    *logger.Logger
	backoff   time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	seq    atomic.Uint64

	succeeded atomic.Uint64
	failed    atomic.Uint64
}

// NewWorker 创建一个新的工作器
func NewWorker(queueSize int, logger *logger.Logger) *Worker {
	return &Worker{
		taskQueue: make(chan Task, queueSize),
		logger:    logger,
		backoff:   time.Second,
	}
}

// Start 启动numWorkers个工作协程
func (w *Worker) Start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.loop()
	}
}

// Stop 停止接收任务，等待队列中的任务执行完
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.taskQueue)
	w.mu.Unlock()

	w.wg.Wait()
}

// Submit 将任务加入队列，队列满时立即返回ErrQueueFull
func (w *Worker) Submit(task Task) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrStopped
	}
	if task.Name == "" {
		task.Name = "task"
	}
	task.Name = fmt.Sprintf("%s_%d", task.Name, w.seq.Add(1))

	select {
	case w.taskQueue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Counts 返回成功和失败的任务数
func (w *Worker) Counts() (succeeded, failed uint64) {
	return w.succeeded.Load(), w.failed.Load()
}

func (w *Worker) loop() {
	defer w.wg.Done()

	for task := range w.taskQueue {
		w.execute(task)
	}
}

// execute 执行单个任务，失败时按次数线性退避重试
func (w *Worker) execute(task Task) {
	start := time.Now()

	var err error
	for attempt := 0; attempt <= task.RetryMax; attempt++ {
		if attempt > 0 {
			w.logger.Info("重试异步任务", "task", task.Name, "attempt", attempt)
			time.Sleep(w.backoff * time.Duration(attempt))
		}

		err = w.run(task)
		if err == nil {
			break
		}
		w.logger.Warn("异步任务执行失败", "task", task.Name, "attempt", attempt, "error", err)
	}

	if err != nil {
		w.failed.Add(1)
		w.logger.Error("异步任务最终失败", "task", task.Name, "error", err)
		return
	}
	w.succeeded.Add(1)
	w.logger.Debug("异步任务完成", "task", task.Name, "duration", time.Since(start))
}

func (w *Worker) run(task Task) (err error) {
	ctx := context.Background()
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task.Handler(ctx)
}
