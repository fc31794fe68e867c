package events

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockLogger, test çıktısını kirletmeyen sessiz logger.
type mockLogger struct {
	mu   sync.Mutex
	logs []string
}

func (m *mockLogger) Printf(format string, v ...interface{}) {
	m.mu.Lock()
	m.logs = append(m.logs, fmt.Sprintf(format, v...))
	m.mu.Unlock()
}

func (m *mockLogger) Println(v ...interface{}) {
	m.mu.Lock()
	m.logs = append(m.logs, fmt.Sprint(v...))
	m.mu.Unlock()
}

// countingListener, kaç kez çağrıldığını sayan listener.
type countingListener struct {
	handled atomic.Int32
	delay   time.Duration
	err     error
}

func (l *countingListener) Handle(event Event) error {
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	l.handled.Add(1)
	return l.err
}

func (l *countingListener) HandledCount() int {
	return int(l.handled.Load())
}

func TestDispatcher_BasicDispatch(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	listener := &countingListener{}
	dispatcher.Listen("test.event", listener)

	err := dispatcher.Dispatch(NewBaseEvent("test.event", "test-data"))
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	if listener.HandledCount() != 1 {
		t.Errorf("Expected listener to be called once, got: %d", listener.HandledCount())
	}
}

func TestDispatcher_MultipleListeners(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	listeners := []*countingListener{{}, {}, {}}
	for _, l := range listeners {
		dispatcher.Listen("test.event", l)
	}

	dispatcher.Dispatch(NewBaseEvent("test.event", "test-data"))

	for i, l := range listeners {
		if l.HandledCount() != 1 {
			t.Errorf("Listener %d: expected 1 call, got %d", i+1, l.HandledCount())
		}
	}
}

func TestDispatcher_AsyncDispatch(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	listener := &countingListener{delay: 100 * time.Millisecond}
	dispatcher.Listen("test.event", listener)

	start := time.Now()
	dispatcher.DispatchAsync(NewBaseEvent("test.event", "async-data"))
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("DispatchAsync blocked for %v, expected < 50ms", elapsed)
	}

	time.Sleep(200 * time.Millisecond)

	if listener.HandledCount() != 1 {
		t.Errorf("Expected listener to be called once, got: %d", listener.HandledCount())
	}
}

func TestDispatcher_ShutdownWaitsForPendingEvents(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})

	listener := &countingListener{delay: 100 * time.Millisecond}
	dispatcher.Listen("test.event", listener)

	for i := 0; i < 10; i++ {
		dispatcher.DispatchAsync(NewBaseEvent("test.event", fmt.Sprintf("data-%d", i)))
	}

	start := time.Now()
	dispatcher.Shutdown()
	elapsed := time.Since(start)

	if listener.HandledCount() != 10 {
		t.Errorf("Expected 10 listener calls, got: %d", listener.HandledCount())
	}

	if elapsed < 100*time.Millisecond {
		t.Errorf("Shutdown completed too quickly: %v", elapsed)
	}
}

func TestDispatcher_ShutdownWithTimeout(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})

	listener := &countingListener{delay: 500 * time.Millisecond}
	dispatcher.Listen("test.event", listener)

	dispatcher.DispatchAsync(NewBaseEvent("test.event", "data"))

	err := dispatcher.ShutdownWithTimeout(100 * time.Millisecond)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestDispatcher_NoGoroutineLeak(t *testing.T) {
	initialGoroutines := runtime.NumGoroutine()

	dispatcher := NewDispatcher(&mockLogger{})
	listener := &countingListener{}
	dispatcher.Listen("test.event", listener)

	for i := 0; i < 100; i++ {
		dispatcher.DispatchAsync(NewBaseEvent("test.event", fmt.Sprintf("data-%d", i)))
	}

	dispatcher.Shutdown()
	time.Sleep(100 * time.Millisecond)

	finalGoroutines := runtime.NumGoroutine()
	if finalGoroutines > initialGoroutines+5 {
		t.Errorf("Potential goroutine leak: initial=%d, final=%d", initialGoroutines, finalGoroutines)
	}
}

func TestDispatcher_AsyncAfterShutdown(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})

	listener := &countingListener{}
	dispatcher.Listen("test.event", listener)

	dispatcher.Shutdown()

	dispatcher.DispatchAsync(NewBaseEvent("test.event", "ignored-data"))
	time.Sleep(100 * time.Millisecond)

	if listener.HandledCount() != 0 {
		t.Errorf("Expected 0 listener calls after shutdown, got: %d", listener.HandledCount())
	}
}

func TestDispatcher_ConcurrentDispatch(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	listener := &countingListener{}
	dispatcher.Listen("test.event", listener)

	var wg sync.WaitGroup
	numGoroutines := 50
	eventsPerGoroutine := 20

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				dispatcher.Dispatch(NewBaseEvent("test.event", fmt.Sprintf("data-%d-%d", id, j)))
			}
		}(i)
	}

	wg.Wait()

	expected := numGoroutines * eventsPerGoroutine
	if listener.HandledCount() != expected {
		t.Errorf("Expected %d listener calls, got: %d", expected, listener.HandledCount())
	}
}

func TestDispatcher_ListenerErrorDoesNotStopOthers(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	listener1 := &countingListener{}
	listener2 := &countingListener{err: fmt.Errorf("simulated error")}
	listener3 := &countingListener{}

	dispatcher.Listen("test.event", listener1)
	dispatcher.Listen("test.event", listener2)
	dispatcher.Listen("test.event", listener3)

	err := dispatcher.Dispatch(NewBaseEvent("test.event", "test-data"))
	if err == nil {
		t.Error("Expected error from failing listener, got nil")
	}

	for i, l := range []*countingListener{listener1, listener2, listener3} {
		if l.HandledCount() != 1 {
			t.Errorf("Listener %d: expected 1 call, got %d", i+1, l.HandledCount())
		}
	}
}

func TestDispatcher_ConditionalListener(t *testing.T) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	listener := &countingListener{}
	conditional := NewConditionalListener(listener, func(e Event) bool {
		return e.Payload() == "allowed"
	})
	dispatcher.Listen("test.event", conditional)

	dispatcher.Dispatch(NewBaseEvent("test.event", "allowed"))
	dispatcher.Dispatch(NewBaseEvent("test.event", "blocked"))

	if listener.HandledCount() != 1 {
		t.Errorf("Expected 1 listener call, got: %d", listener.HandledCount())
	}
}

func BenchmarkDispatcher_SyncDispatch(b *testing.B) {
	dispatcher := NewDispatcher(&mockLogger{})
	defer dispatcher.Shutdown()

	dispatcher.Listen("test.event", &countingListener{})
	event := NewBaseEvent("test.event", "bench-data")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dispatcher.Dispatch(event)
	}
}
