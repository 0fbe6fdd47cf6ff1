// Package dispatch 实现事件调度引擎
package dispatch

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Dispatcher pkgif.Dispatcher
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("dispatch",
		fx.Provide(ProvideDispatcher),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideDispatcher 提供 Dispatcher 实例
func ProvideDispatcher() Result {
	return Result{
		Dispatcher: NewEngine(),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC         fx.Lifecycle
	Dispatcher pkgif.Dispatcher
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 调度引擎惰性创建节点，无需特殊启动逻辑
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.Dispatcher.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "dispatch"
	// Description 模块描述
	Description = "事件调度引擎模块，提供类型安全的触发/绑定机制"
)
