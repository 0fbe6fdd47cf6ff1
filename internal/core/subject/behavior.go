// Package subject 实现多播通道
package subject

import "github.com/go-watchers/go-watchers/pkg/types"

// behaviorSubject 附加时先补发最近一条记录（"最后值回放"）
type behaviorSubject struct {
	base
	last *types.Event
}

func (s *behaviorSubject) Push(ev *types.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	s.last = ev
	s.fanout(ev)
	return true
}

func (s *behaviorSubject) Attach(sink Sink) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 补发在登记之前完成，期间持有锁，
	// 保证补发记录与后续实时记录之间不乱序、不重复；
	// 终止信号之后不再补发
	if !s.done && s.last != nil {
		sink(s.last)
	}
	return s.add(&entry{sink: sink})
}

func (s *behaviorSubject) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
}
