// Package subject 实现多播通道
//
// 每个事件类型对应一条多播通道：生产者推入事件记录，
// 任意数量的出口（消费者管线）可以在创建后附加。
// 四种变体只在"新附加的出口能看到多少历史记录"上有差异：
//
//   - Publish：只投递附加之后推入的记录
//   - Behavior：附加时先补发最近一条记录
//   - Replay：附加时按原始顺序补发全部历史记录
//   - Async：只在收到终止信号后投递最后一条记录
//
// # 契约
//
//   - Push 不会阻塞生产者（出口由投递管线决定是否解耦）；
//     被接收返回 true，终止信号之后返回 false
//   - 多个 Attach 相互独立、互不干扰
//   - Complete 之后的 Push 被忽略；Behavior 变体在终止之后不再补发
//
// # 并发
//
// 推入与附加在通道自身的互斥锁下进行，
// 单一事件类型内的投递顺序因此有定义；跨事件类型不保证顺序。
// 分离只置标记、不取锁，因此可以在同步投递回调内分离（解绑）自身；
// 在同步投递回调内再次推入或附加同一通道不受支持。
//
// # 架构定位
//
// 依赖关系：
//   - 依赖：pkg/types
//   - 被依赖：internal/core/dispatch
package subject
