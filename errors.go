package watchers

import "github.com/go-watchers/go-watchers/internal/core/dispatch"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 声明相关错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNilSpec 事件类型声明为空
	ErrNilSpec = dispatch.ErrNilSpec

	// ErrInvalidSpec 非法的事件类型声明
	// 合法事件类型必须且只能直接派生自基础标记
	ErrInvalidSpec = dispatch.ErrInvalidSpec

	// ────────────────────────────────────────────────────────────────────────
	// 绑定相关错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNonPointerWatcher 非指针消费者（身份需要引用语义）
	ErrNonPointerWatcher = dispatch.ErrNonPointerWatcher

	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrClosed 调度引擎已关闭
	ErrClosed = dispatch.ErrClosed
)
