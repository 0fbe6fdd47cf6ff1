package watchers

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/go-watchers/go-watchers/internal/core/dispatch"
)

// ════════════════════════════════════════════════════════════════════════════
//                              Fx 集成
// ════════════════════════════════════════════════════════════════════════════

// Module 返回 go-watchers 的 Fx 模块
//
// 提供 interfaces.Dispatcher，并在应用停止时关闭引擎：
//
//	app := fx.New(
//	    watchers.Module(),
//	    fx.Invoke(func(d pkgif.Dispatcher) {
//	        _ = d.Bind(consumer)
//	    }),
//	)
func Module() fx.Option {
	return dispatch.Module()
}

// QuietFxLogger 返回静默的 Fx 事件日志配置
//
// 引擎自身的日志走 pkg/lib/log；Fx 装配日志通常只在排查
// 依赖注入问题时才需要。
func QuietFxLogger() fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	})
}
