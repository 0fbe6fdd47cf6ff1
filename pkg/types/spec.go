// Package types 定义 go-watchers 公共值类型
//
// 本文件定义事件类型声明（Spec）。
// Spec 以显式声明取代运行时类型内省：每个事件类型（或能力集合）
// 在包初始化时声明一次，之后以指针身份作为全局唯一标识。
package types

import "time"

// marker 基础标记能力（所有事件类型的根）
var marker = &Spec{name: "watcher"}

// Marker 返回基础标记能力
//
// 合法的事件类型必须且只能直接派生自该标记。
// 标记本身不是事件类型，能力发现时会被排除。
func Marker() *Spec {
	return marker
}

// Spec 事件类型声明
//
// 一个 Spec 唯一标识一个事件类型：一份投递配置、一条多播通道、
// 一个订阅注册表。Spec 以指针身份比较，声明后不可变，
// 同一逻辑事件类型不应声明两次。
//
// Spec 也可以作为"能力集合"派生自多个其他 Spec，
// 这样的集合可用于消费者的能力声明，但不能作为事件类型触发。
type Spec struct {
	name    string
	extends []*Spec
	cfg     *Config
}

// SpecOption 声明选项函数类型
type SpecOption func(*Spec)

// Extends 声明派生关系
//
// 未使用 Extends 时默认直接派生自基础标记，
// 等价于 Extends(types.Marker())。
func Extends(parents ...*Spec) SpecOption {
	return func(s *Spec) {
		s.extends = append(s.extends, parents...)
	}
}

// WithSubject 选择多播通道变体
func WithSubject(kind SubjectKind) SpecOption {
	return func(s *Spec) {
		s.ensureConfig().Subject = kind
	}
}

// WithSample 设置采样间隔
func WithSample(interval time.Duration) SpecOption {
	return func(s *Spec) {
		s.ensureConfig().Sample = interval
	}
}

// WithBackpressureDrop 启用丢弃式背压整形
func WithBackpressureDrop() SpecOption {
	return func(s *Spec) {
		s.ensureConfig().Backpressure = BackpressureDrop
	}
}

// WithBackpressureBuffer 启用有界缓冲背压整形
func WithBackpressureBuffer(size int) SpecOption {
	return func(s *Spec) {
		cfg := s.ensureConfig()
		cfg.Backpressure = BackpressureBuffer
		cfg.Buffer = size
	}
}

// WithOnce 启用单次消费语义
func WithOnce() SpecOption {
	return func(s *Spec) {
		s.ensureConfig().Once = true
	}
}

// NewSpec 声明一个事件类型（或能力集合）
//
// name 仅用于日志与错误信息，不参与身份比较。
func NewSpec(name string, opts ...SpecOption) *Spec {
	s := &Spec{name: name}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.extends) == 0 {
		s.extends = []*Spec{marker}
	}
	return s
}

// Name 返回声明名称
func (s *Spec) Name() string {
	return s.name
}

// Parents 返回直接父声明列表
func (s *Spec) Parents() []*Spec {
	return s.extends
}

// Config 返回解析后的投递配置
//
// 显式配置优先，否则返回全局默认值。
func (s *Spec) Config() Config {
	if s.cfg != nil {
		return *s.cfg
	}
	return DefaultConfig()
}

// Specializes 判断 s 是否（直接或间接）派生自 other
func (s *Spec) Specializes(other *Spec) bool {
	if s == other {
		return true
	}
	for _, p := range s.extends {
		if p.Specializes(other) {
			return true
		}
	}
	return false
}

// WellFormed 判断 s 是否为合法的事件类型
//
// 合法事件类型必须且只能直接派生自基础标记。
// 派生自多个声明（或派生自非标记声明）的 Spec 只能作为能力集合使用。
func (s *Spec) WellFormed() bool {
	return len(s.extends) == 1 && s.extends[0] == marker
}

func (s *Spec) ensureConfig() *Config {
	if s.cfg == nil {
		cfg := DefaultConfig()
		s.cfg = &cfg
	}
	return s.cfg
}
