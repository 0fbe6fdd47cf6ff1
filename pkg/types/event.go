// Package types 定义 go-watchers 公共值类型
//
// 本文件定义事件记录（Event）。
package types

import "sync/atomic"

// Event 一次触发产生的事件记录
//
// 记录携带动作标识与按序参数，被当前绑定的所有消费者共享读取。
// consumed 标志仅在事件类型配置了单次消费（Once）时使用：
// 首个写入者胜出，其余消费者跳过本次调用。
type Event struct {
	spec     *Spec
	action   string
	args     []any
	consumed atomic.Bool
}

// NewEvent 构造一条事件记录
func NewEvent(spec *Spec, action string, args []any) *Event {
	return &Event{
		spec:   spec,
		action: action,
		args:   args,
	}
}

// Spec 返回事件类型声明
func (e *Event) Spec() *Spec {
	return e.spec
}

// Action 返回触发的动作标识
//
// 一个事件类型可以暴露多个动作。
func (e *Event) Action() string {
	return e.action
}

// Args 返回按序参数
//
// 返回的切片在所有消费者之间共享，调用方不应修改。
func (e *Event) Args() []any {
	return e.args
}

// TryConsume 原子地抢占消费权
//
// 首次调用返回 true，之后始终返回 false。
// 仅供投递管线在单次消费模式下使用。
func (e *Event) TryConsume() bool {
	return e.consumed.CompareAndSwap(false, true)
}

// Consumed 返回记录是否已被消费
func (e *Event) Consumed() bool {
	return e.consumed.Load()
}
