// Package types 定义 go-watchers 公共值类型
//
// 本文件定义事件类型的投递配置（Config）。
// 配置在声明事件类型时给出，未声明的字段使用全局默认值。
package types

import "time"

// SubjectKind 多播通道变体
//
// 变体之间只在"新附加的消费者能看到多少历史记录"上有差异。
type SubjectKind int

const (
	// SubjectPublish 只投递附加之后推入的记录（默认）
	SubjectPublish SubjectKind = iota

	// SubjectBehavior 附加时先补发最近一条记录，再投递后续记录
	SubjectBehavior

	// SubjectReplay 附加时按原始顺序补发全部历史记录，再投递后续记录
	SubjectReplay

	// SubjectAsync 只在收到终止信号后投递最后一条记录
	SubjectAsync
)

// String 返回变体名称
func (k SubjectKind) String() string {
	switch k {
	case SubjectPublish:
		return "publish"
	case SubjectBehavior:
		return "behavior"
	case SubjectReplay:
		return "replay"
	case SubjectAsync:
		return "async"
	default:
		return "unknown"
	}
}

// BackpressureMode 背压整形模式
type BackpressureMode int

const (
	// BackpressureNone 不做整形，同步投递（默认）
	BackpressureNone BackpressureMode = iota

	// BackpressureDrop 消费者来不及处理时直接丢弃记录
	BackpressureDrop

	// BackpressureBuffer 最多缓冲 Buffer 条待处理记录，超出丢弃
	BackpressureBuffer
)

// String 返回模式名称
func (m BackpressureMode) String() string {
	switch m {
	case BackpressureNone:
		return "none"
	case BackpressureDrop:
		return "drop"
	case BackpressureBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Config 事件类型的投递配置
//
// 每个事件类型至多解析一次，解析后不可变。
// 解析顺序：声明时的显式配置优先，否则使用 DefaultConfig()。
type Config struct {
	// Subject 多播通道变体
	Subject SubjectKind

	// Sample 采样间隔，0 表示不采样
	//
	// 设置后，间隔内的突发记录被合并为至多一条（保留最新）。
	Sample time.Duration

	// Backpressure 背压整形模式
	Backpressure BackpressureMode

	// Buffer 背压缓冲区容量（仅 BackpressureBuffer 模式有效）
	Buffer int

	// Once 单次消费：一条记录只被全部消费者中的一个消费
	Once bool
}

// DefaultConfig 返回全局默认配置
//
// Publish 变体、不采样、不整形、非单次消费。
func DefaultConfig() Config {
	return Config{
		Subject:      SubjectPublish,
		Backpressure: BackpressureNone,
	}
}
