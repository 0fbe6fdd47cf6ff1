// Package watchers 提供进程内类型安全的事件调度
//
// go-watchers 是一个进程内发布/订阅事件总线：生产者"触发"一个
// 已声明的事件类型的动作，所有当前绑定并实现该类型的消费者
// 按该类型的投递策略（通道变体、采样、背压整形、调度器转移、
// 单次消费）收到通知。
//
// # 三步上手
//
// 1. 声明事件类型（包初始化时声明一次）：
//
//	var OnPush = types.NewSpec("push",
//	    types.WithSubject(types.SubjectBehavior))
//
// 2. 实现并绑定消费者：
//
//	type pushHandler struct{ /* ... */ }
//
//	func (h *pushHandler) Watching() []*types.Spec {
//	    return []*types.Spec{OnPush}
//	}
//
//	func (h *pushHandler) OnWatch(ev *types.Event) error {
//	    msg := ev.Args()[0].(string)
//	    // 处理事件
//	    return nil
//	}
//
//	ws := watchers.New()
//	defer ws.Close()
//	_ = ws.Bind(handler)          // 幂等：重复绑定是空操作
//	defer func() { _ = ws.Unbind(handler) }()
//
// 3. 触发：
//
//	h, _ := ws.Resolve(OnPush)
//	h.Trigger("notify", "hello")
//
// # 投递策略
//
// 每个事件类型在声明时解析一次投递配置：
//
//   - 通道变体（types.SubjectKind）：Publish / Behavior / Replay / Async，
//     只在新绑定的消费者能看到多少历史记录上有差异
//   - 采样（types.WithSample）：间隔内突发合并为至多一条，保留最新
//   - 背压整形（types.WithBackpressureDrop / WithBackpressureBuffer）：
//     消费者跟不上时丢弃，队列满时丢弃最新记录
//   - 单次消费（types.WithOnce）：一条记录只被全部消费者中的一个消费
//
// 未配置解耦层时，投递在触发 goroutine 上同步完成；
// 绑定时通过 interfaces.ObserveOn 指定调度器后，
// 该消费者的投递转投到指定执行上下文（pkg/lib/scheduler
// 提供 FIFO 串行调度器实现）。
//
// # 生命周期
//
// Bind 与 Unbind 成对出现：任何移除路径都会同步拆除订阅。
// 消费者可以在投递回调内解绑自身（处理一次后即退出的模式）；
// 在同步投递回调内触发同一事件类型不受支持。
// 跨事件类型不保证投递顺序；本库不做跨进程投递与持久化。
package watchers
