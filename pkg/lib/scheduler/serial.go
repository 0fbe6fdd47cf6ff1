// Package scheduler 提供投递调度器实现
//
// Serial 是 interfaces.Scheduler 的参考实现：单 goroutine 顺序执行，
// 保证任务按提交顺序运行（FIFO），提交方永不阻塞。
package scheduler

import (
	"sync"
)

// Serial 串行调度器
//
// 所有任务在同一个 goroutine 上按提交顺序执行。
// 队列无界：提交永不阻塞，积压由调用方的投递管线负责整形。
type Serial struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewSerial 创建并启动串行调度器
func NewSerial() *Serial {
	s := &Serial{
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// Schedule 提交一个任务
//
// 关闭后的提交被静默丢弃。
func (s *Serial) Schedule(task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, task)
	s.cond.Signal()
}

// Close 关闭调度器
//
// 已排队的任务会执行完毕；Close 阻塞直到工作 goroutine 退出。
// Close 是并发安全的，可以多次调用。
func (s *Serial) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		s.cond.Signal()
	}
	s.mu.Unlock()

	<-s.done
	return nil
}

// run 工作循环：取出队首任务并执行
func (s *Serial) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()
			return
		}
		task := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		task()
	}
}
