package dispatch

import (
	"sync"
	"testing"

	"github.com/go-watchers/go-watchers/pkg/types"
)

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_FirstUseSingleNode 测试并发首用只安装一个节点
func TestConcurrent_FirstUseSingleNode(t *testing.T) {
	e := NewEngine()
	spec := types.NewSpec("concurrent-prepare")

	const goroutines = 32
	nodes := make([]*node, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(idx int) {
			defer wg.Done()
			n, err := e.prepare(spec)
			if err != nil {
				t.Errorf("prepare() failed: %v", err)
				return
			}
			nodes[idx] = n
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if nodes[i] != nodes[0] {
			t.Fatal("Concurrent first-use installed more than one node")
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.nodes) != 1 {
		t.Errorf("Engine holds %d nodes, want 1", len(e.nodes))
	}
}

// TestConcurrent_BindSamePair 测试并发绑定同一 (消费者, 事件类型) 只产生一条订阅
func TestConcurrent_BindSamePair(t *testing.T) {
	e := NewEngine()
	spec := types.NewSpec("concurrent-bind")

	w := &testWatcher{specs: []*types.Spec{spec}}

	var wg sync.WaitGroup
	const goroutines = 16
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if err := e.Bind(w); err != nil {
				t.Errorf("Bind() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	h, _ := e.Resolve(spec)
	h.Trigger("notify")

	if w.count() != 1 {
		t.Errorf("Received %d invocations per record, want 1", w.count())
	}
}

// TestConcurrent_TriggerManyProducers 测试多生产者并发触发不丢记录
func TestConcurrent_TriggerManyProducers(t *testing.T) {
	e := NewEngine()
	spec := types.NewSpec("concurrent-trigger")

	w := &testWatcher{specs: []*types.Spec{spec}}
	_ = e.Bind(w)

	h, _ := e.Resolve(spec)

	const producers = 10
	const perProducer = 50

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				h.Trigger("notify", id*1000+j)
			}
		}(i)
	}
	wg.Wait()

	if w.count() != producers*perProducer {
		t.Errorf("Received %d invocations, want %d", w.count(), producers*perProducer)
	}
}

// TestConcurrent_BindUnbindChurn 测试绑定/解绑与触发并发进行不崩溃不死锁
func TestConcurrent_BindUnbindChurn(t *testing.T) {
	e := NewEngine()
	spec := types.NewSpec("concurrent-churn")

	h, _ := e.Resolve(spec)

	stop := make(chan struct{})
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		for {
			select {
			case <-stop:
				return
			default:
				h.Trigger("notify")
			}
		}
	}()

	var wg sync.WaitGroup
	const churners = 8
	wg.Add(churners)
	for i := 0; i < churners; i++ {
		go func() {
			defer wg.Done()
			w := &testWatcher{specs: []*types.Spec{spec}}
			for j := 0; j < 100; j++ {
				_ = e.Bind(w)
				_ = e.Unbind(w)
			}
		}()
	}

	// churner 全部退出后停止生产者
	wg.Wait()
	close(stop)
	<-producerDone
}
