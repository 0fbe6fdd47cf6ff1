// Package subject 实现多播通道
package subject

import "github.com/go-watchers/go-watchers/pkg/types"

// replaySubject 附加时按原始顺序补发全部历史记录
type replaySubject struct {
	base
	history []*types.Event
}

func (s *replaySubject) Push(ev *types.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	s.history = append(s.history, ev)
	s.fanout(ev)
	return true
}

func (s *replaySubject) Attach(sink Sink) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.history {
		sink(ev)
	}
	return s.add(&entry{sink: sink})
}

func (s *replaySubject) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
}
