package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 事件类型声明测试
// ============================================================================

// TestNewSpec_Defaults 测试默认声明
func TestNewSpec_Defaults(t *testing.T) {
	s := NewSpec("push")

	assert.Equal(t, "push", s.Name())
	require.Len(t, s.Parents(), 1)
	assert.Same(t, Marker(), s.Parents()[0])
	assert.True(t, s.WellFormed())

	// 未显式配置时返回全局默认值
	cfg := s.Config()
	assert.Equal(t, DefaultConfig(), cfg)
}

// TestNewSpec_Options 测试声明选项
func TestNewSpec_Options(t *testing.T) {
	s := NewSpec("network-changed",
		WithSubject(SubjectBehavior),
		WithSample(200*time.Millisecond),
		WithBackpressureBuffer(64),
		WithOnce())

	cfg := s.Config()
	assert.Equal(t, SubjectBehavior, cfg.Subject)
	assert.Equal(t, 200*time.Millisecond, cfg.Sample)
	assert.Equal(t, BackpressureBuffer, cfg.Backpressure)
	assert.Equal(t, 64, cfg.Buffer)
	assert.True(t, cfg.Once)
}

// TestSpec_ConfigIsolated 测试返回的配置是副本
func TestSpec_ConfigIsolated(t *testing.T) {
	s := NewSpec("isolated", WithBackpressureDrop())

	cfg := s.Config()
	cfg.Backpressure = BackpressureNone

	assert.Equal(t, BackpressureDrop, s.Config().Backpressure)
}

// TestSpec_PointerIdentity 测试同名声明是不同的事件类型
func TestSpec_PointerIdentity(t *testing.T) {
	a := NewSpec("same-name")
	b := NewSpec("same-name")

	assert.NotSame(t, a, b)
}

// TestSpec_Specializes 测试派生关系判定
func TestSpec_Specializes(t *testing.T) {
	push := NewSpec("push")
	net := NewSpec("net")
	all := NewSpec("all", Extends(push, net))

	assert.True(t, push.Specializes(Marker()))
	assert.True(t, all.Specializes(push))
	assert.True(t, all.Specializes(net))
	assert.True(t, all.Specializes(Marker()))
	assert.False(t, push.Specializes(net))
	assert.True(t, push.Specializes(push))
}

// TestSpec_WellFormed 测试合法事件类型判定
func TestSpec_WellFormed(t *testing.T) {
	push := NewSpec("push")
	net := NewSpec("net")

	// 能力集合：派生自多个声明，可绑定但不可触发
	composite := NewSpec("composite", Extends(push, net))
	assert.False(t, composite.WellFormed())

	// 派生自非标记声明
	derived := NewSpec("derived", Extends(push))
	assert.False(t, derived.WellFormed())

	// 基础标记本身不是事件类型
	assert.Len(t, Marker().Parents(), 0)
	assert.False(t, Marker().WellFormed())
}

// ============================================================================
// 投递配置测试
// ============================================================================

// TestDefaultConfig 测试全局默认配置
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, SubjectPublish, cfg.Subject)
	assert.Equal(t, time.Duration(0), cfg.Sample)
	assert.Equal(t, BackpressureNone, cfg.Backpressure)
	assert.False(t, cfg.Once)
}

// TestSubjectKind_String 测试变体名称
func TestSubjectKind_String(t *testing.T) {
	assert.Equal(t, "publish", SubjectPublish.String())
	assert.Equal(t, "behavior", SubjectBehavior.String())
	assert.Equal(t, "replay", SubjectReplay.String())
	assert.Equal(t, "async", SubjectAsync.String())
}

// ============================================================================
// 事件记录测试
// ============================================================================

// TestEvent_Accessors 测试事件记录字段
func TestEvent_Accessors(t *testing.T) {
	spec := NewSpec("push")
	ev := NewEvent(spec, "notify", []any{1, "two"})

	assert.Same(t, spec, ev.Spec())
	assert.Equal(t, "notify", ev.Action())
	assert.Equal(t, []any{1, "two"}, ev.Args())
	assert.False(t, ev.Consumed())
}

// TestEvent_TryConsume 测试单次消费门控
func TestEvent_TryConsume(t *testing.T) {
	ev := NewEvent(NewSpec("once"), "notify", nil)

	assert.True(t, ev.TryConsume())
	assert.True(t, ev.Consumed())

	// 第二次声领失败
	assert.False(t, ev.TryConsume())
}
