// Package subject 实现多播通道
package subject

import "github.com/go-watchers/go-watchers/pkg/types"

// asyncSubject 只在收到终止信号后投递最后一条记录
//
// 终止信号之后附加的出口立即收到该记录（如果存在）。
type asyncSubject struct {
	base
	last *types.Event
}

func (s *asyncSubject) Push(ev *types.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	s.last = ev
	return true
}

func (s *asyncSubject) Attach(sink Sink) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done && s.last != nil {
		sink(s.last)
	}
	return s.add(&entry{sink: sink})
}

func (s *asyncSubject) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	if s.last != nil {
		s.fanout(s.last)
	}
}
