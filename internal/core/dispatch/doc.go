// Package dispatch 实现事件调度引擎
//
// 调度引擎是 go-watchers 的门面：生产者通过 Resolve 获得触发句柄，
// 消费者通过 Bind/Unbind 注册；每个事件类型的记录经由该类型的
// 投递管线（采样、背压整形、调度器转移、单次门控）送达消费者。
//
// # 快速开始
//
//	// 声明事件类型
//	var onPush = types.NewSpec("push", types.WithSubject(types.SubjectBehavior))
//
//	// 创建引擎并绑定消费者
//	eng := dispatch.NewEngine()
//	defer eng.Close()
//	eng.Bind(consumer)
//
//	// 触发
//	h, _ := eng.Resolve(onPush)
//	h.Trigger("notify", msg)
//
// # Fx 模块
//
//	import "go.uber.org/fx"
//
//	app := fx.New(
//	    dispatch.Module(),
//	    fx.Invoke(func(d pkgif.Dispatcher) {
//	        _ = d.Bind(consumer)
//	    }),
//	)
//
// # 调度模型
//
// 引擎没有内部线程池：Trigger 在调用方 goroutine 上执行；
// 未配置采样、背压整形且未指定调度器时，消费者的调用
// 在触发 goroutine 上同步完成。配置了解耦层的订阅
// 由各自的管线 goroutine（或绑定时指定的调度器）投递。
//
// # 并发安全
//
//   - 事件类型节点的惰性创建：双重检查 + 引擎互斥锁，
//     并发首用下恰好安装一个节点
//   - 订阅注册表：注册表锁内执行工厂，
//     并发绑定同一 (消费者, 事件类型) 至多创建一条订阅
//   - 统计计数：atomic
//
// # 架构定位
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types, internal/core/subject, pkg/lib/log
//   - 被依赖：根包门面
package dispatch
