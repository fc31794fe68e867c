// -----------------------------------------------------------------------------
// Event Dispatcher
// -----------------------------------------------------------------------------
// Event'leri listener'lara dağıtan merkezi yapı. Observer pattern'in
// thread-safe bir implementasyonudur; Laravel'in Event::dispatch()
// konseptine benzer çalışır.
//
//	dispatcher := events.NewDispatcher(logger)
//	dispatcher.Listen(events.EventUserRegistered, &SendWelcomeEmail{})
//	dispatcher.Dispatch(events.NewUserRegisteredEvent(user))
// -----------------------------------------------------------------------------

package events

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Dispatcher, event-listener eşleşmelerini tutar ve dispatch eder.
// Async dispatch'ler WaitGroup ile takip edilir; Shutdown bekleyen
// event'lerin tamamlanmasını bekler.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    Logger
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewDispatcher, yeni bir Dispatcher oluşturur. Kullanım bittiğinde
// Shutdown() çağrılmalıdır.
func NewDispatcher(logger Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		listeners: make(map[string][]Listener),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Listen, event'e bir listener kaydeder. Aynı event'e birden fazla listener
// kaydedilebilir; hepsi sırayla çağrılır.
func (d *Dispatcher) Listen(eventName string, listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[eventName] = append(d.listeners[eventName], listener)
	d.logger.Printf("✅ Listener registered for event: %s", eventName)
}

// Dispatch, event'i kayıtlı tüm listener'lara senkron olarak gönderir.
// Bir listener'ın hatası diğerlerini engellemez; son hata döndürülür.
func (d *Dispatcher) Dispatch(event Event) error {
	d.mu.RLock()
	listeners := d.listeners[event.Name()]
	d.mu.RUnlock()

	if len(listeners) == 0 {
		d.logger.Printf("⚠️  No listeners for event: %s", event.Name())
		return nil
	}

	d.logger.Printf("📢 Dispatching event: %s (listeners: %d)", event.Name(), len(listeners))

	var lastError error

	for _, listener := range listeners {
		if err := listener.Handle(event); err != nil {
			lastError = err
			d.logger.Printf("❌ Listener error for '%s': %v", event.Name(), err)
		}
	}

	return lastError
}

// DispatchAsync, event'i goroutine'de dispatch eder ve hemen döner. Hatalar
// sadece loglanır. Shutdown sonrası çağrılar sessizce yok sayılır; bu sayede
// goroutine leak oluşmaz.
func (d *Dispatcher) DispatchAsync(event Event) {
	select {
	case <-d.ctx.Done():
		d.logger.Printf("⚠️  Dispatcher is shutting down, async event '%s' ignored", event.Name())
		return
	default:
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		select {
		case <-d.ctx.Done():
			d.logger.Printf("⚠️  Async event '%s' cancelled due to shutdown", event.Name())
			return
		default:
		}

		if err := d.Dispatch(event); err != nil {
			d.logger.Printf("❌ Async dispatch error for '%s': %v", event.Name(), err)
		}
	}()
}

// Forget, event'in tüm listener'larını kaldırır.
func (d *Dispatcher) Forget(eventName string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.listeners, eventName)
	d.logger.Printf("🗑️  All listeners removed for event: %s", eventName)
}

// GetListeners, event'in listener sayısını döndürür.
func (d *Dispatcher) GetListeners(eventName string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.listeners[eventName])
}

// HasListeners, event'in en az bir listener'ı olup olmadığını söyler.
func (d *Dispatcher) HasListeners(eventName string) bool {
	return d.GetListeners(eventName) > 0
}

// Subscribe, aynı listener'ı birden fazla event'e kaydeder.
func (d *Dispatcher) Subscribe(eventNames []string, listener Listener) {
	for _, eventName := range eventNames {
		d.Listen(eventName, listener)
	}
}

// Clear, tüm listener'ları temizler. Test amaçlıdır.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners = make(map[string][]Listener)
	d.logger.Println("🗑️  All event listeners cleared")
}

// Stats, event adı -> listener sayısı map'i döndürür.
func (d *Dispatcher) Stats() map[string]int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := make(map[string]int)
	for event, listeners := range d.listeners {
		stats[event] = len(listeners)
	}

	return stats
}

// Shutdown, yeni async event'leri engeller ve bekleyenlerin tamamlanmasını
// bekler. Uygulama kapanırken çağrılmalıdır.
func (d *Dispatcher) Shutdown() {
	d.logger.Println("🔄 Shutting down event dispatcher...")

	d.cancel()
	d.wg.Wait()

	d.logger.Println("✅ Event dispatcher shutdown complete")
}

// ShutdownWithTimeout, Shutdown'ın süre sınırlı halidir. Timeout aşılırsa
// bekleyen event'ler tamamlanmadan döner ve hata verir.
func (d *Dispatcher) ShutdownWithTimeout(timeout time.Duration) error {
	d.logger.Printf("🔄 Shutting down event dispatcher (timeout: %v)...", timeout)

	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Println("✅ Event dispatcher shutdown complete")
		return nil
	case <-time.After(timeout):
		d.logger.Println("⚠️  Event dispatcher shutdown timeout - some events may not have completed")
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
