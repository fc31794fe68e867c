// -----------------------------------------------------------------------------
// Event Listeners
// -----------------------------------------------------------------------------
// Listener, bir event gerçekleştiğinde çalışacak kod bloğudur. Dispatcher,
// event'e kayıtlı tüm listener'ları sırayla çalıştırır; bir listener'ın
// hatası diğerlerini engellemez.
// -----------------------------------------------------------------------------

package events

// Listener, event'leri işleyen interface'dir.
type Listener interface {
	// Handle, event'i işler. Hata dönerse dispatcher loglar ama diğer
	// listener'ları çalıştırmaya devam eder.
	Handle(event Event) error
}

// ListenerFunc, fonksiyonları Listener interface'ine çevirir.
//
//	dispatcher.Listen(events.EventUserRegistered, events.ListenerFunc(func(e events.Event) error {
//	    log.Println("Yeni kayıt:", e.Payload())
//	    return nil
//	}))
type ListenerFunc func(Event) error

func (f ListenerFunc) Handle(event Event) error {
	return f(event)
}

// Logger, dispatcher ve wrapper'ların log bağımlılığıdır.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// AsyncListener, sarmaladığı listener'ı goroutine'de çalıştırır. Email gibi
// yavaş işlemlerin event dispatch'i bloklamasını önler. Goroutine'de
// çalıştığı için Handle her zaman nil döner; hatalar loglanır.
type AsyncListener struct {
	listener Listener
	logger   Logger
}

// NewAsyncListener, yeni bir AsyncListener oluşturur.
func NewAsyncListener(listener Listener, logger Logger) *AsyncListener {
	return &AsyncListener{
		listener: listener,
		logger:   logger,
	}
}

func (a *AsyncListener) Handle(event Event) error {
	go func() {
		if err := a.listener.Handle(event); err != nil {
			a.logger.Printf("❌ Async listener error for event '%s': %v", event.Name(), err)
		}
	}()

	return nil
}

// ConditionalListener, yalnızca koşul sağlandığında çalışan listener'dır.
type ConditionalListener struct {
	listener  Listener
	condition func(Event) bool
}

// NewConditionalListener, yeni bir ConditionalListener oluşturur.
func NewConditionalListener(listener Listener, condition func(Event) bool) *ConditionalListener {
	return &ConditionalListener{
		listener:  listener,
		condition: condition,
	}
}

func (c *ConditionalListener) Handle(event Event) error {
	if c.condition(event) {
		return c.listener.Handle(event)
	}
	return nil
}
