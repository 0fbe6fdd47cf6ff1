package dispatch

import (
	"context"
	"testing"

	pkgif "github.com/go-watchers/go-watchers/pkg/interfaces"
	"github.com/go-watchers/go-watchers/pkg/types"
	"go.uber.org/fx"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	var loaded pkgif.Dispatcher

	app := fx.New(
		Module(),
		fx.Invoke(func(d pkgif.Dispatcher) {
			loaded = d
		}),
	)

	ctx := context.Background()

	// 启动应用
	if err := app.Start(ctx); err != nil {
		t.Fatalf("app.Start() failed: %v", err)
	}

	// 验证 Dispatcher 注入成功
	if loaded == nil {
		t.Error("Dispatcher not injected by Fx")
	}

	// 停止应用
	if err := app.Stop(ctx); err != nil {
		t.Errorf("app.Stop() failed: %v", err)
	}
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	result := ProvideDispatcher()

	if result.Dispatcher == nil {
		t.Error("ProvideDispatcher() did not provide Dispatcher")
	}
}

// TestModule_Lifecycle 测试生命周期钩子关闭引擎
func TestModule_Lifecycle(t *testing.T) {
	var loaded pkgif.Dispatcher

	app := fx.New(
		Module(),
		fx.Invoke(func(d pkgif.Dispatcher) {
			loaded = d
		}),
		fx.NopLogger,
	)

	ctx := context.Background()

	// 启动
	if err := app.Start(ctx); err != nil {
		t.Fatalf("app.Start() failed: %v", err)
	}

	// 停止
	if err := app.Stop(ctx); err != nil {
		t.Errorf("app.Stop() failed: %v", err)
	}

	// OnStop 已关闭引擎，后续绑定应失败
	spec := types.NewSpec("module-lifecycle")
	w := &testWatcher{specs: []*types.Spec{spec}}
	if err := loaded.Bind(w); err == nil {
		t.Error("Bind() after lifecycle stop succeeded, want ErrClosed")
	}
}
