// Package dispatch 实现事件调度引擎
package dispatch

import (
	"github.com/go-watchers/go-watchers/internal/core/subject"
	"github.com/go-watchers/go-watchers/pkg/types"
)

// ============================================================================
// 事件类型节点
// ============================================================================

// node 事件类型节点
//
// 每个事件类型恰好一个节点，承载该类型的全部可变调度状态。
// 节点在首次触发或首次绑定时创建，进程生命周期内不销毁。
type node struct {
	spec *types.Spec

	// cfg 解析后的投递配置（每类型至多解析一次，之后不可变）
	cfg types.Config

	// subj 多播通道
	subj subject.Subject

	// cache 订阅注册表
	cache *watchCache
}

// prepare 获取（必要时创建）事件类型节点
//
// 惰性、幂等：并发首用下恰好安装一个节点，
// 后来者使用胜出者的结果。
func (e *Engine) prepare(spec *types.Spec) (*node, error) {
	e.mu.RLock()
	n, ok := e.nodes[spec]
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if ok {
		return n, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if n, ok = e.nodes[spec]; ok {
		return n, nil
	}

	// 配置解析：声明时的显式配置优先，否则全局默认值
	cfg := resolveConfig(spec)
	n = &node{
		spec:  spec,
		cfg:   cfg,
		subj:  subject.New(cfg.Subject),
		cache: newWatchCache(),
	}
	e.nodes[spec] = n

	logger.Debug("创建事件类型节点",
		"spec", spec.Name(),
		"subject", cfg.Subject.String(),
		"backpressure", cfg.Backpressure.String(),
		"sample", cfg.Sample,
		"once", cfg.Once)
	return n, nil
}

// resolveConfig 解析事件类型的投递配置
func resolveConfig(spec *types.Spec) types.Config {
	return spec.Config()
}
