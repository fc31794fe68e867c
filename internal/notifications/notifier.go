// -----------------------------------------------------------------------------
// Notifications
// -----------------------------------------------------------------------------
// Kampanya yaşam döngüsü bildirimlerini observer pattern ile dağıtır.
// Servis katmanı sadece Notify çağırır; kimlerin dinlediğini bilmez.
// Observer'lar goroutine içinde çalıştırılır, ana akışı bloke etmez.
// -----------------------------------------------------------------------------

package notifications

import (
	"log"
	"sync"
	"time"
)

// EventType, bildirim tipini temsil eder
type EventType string

const (
	EventTypeParticipationJoined EventType = "participation_joined"
	EventTypeParticipationLeft   EventType = "participation_left"
	EventTypeFinalPaymentDone    EventType = "final_payment_completed"
	EventTypeCampaignSuccessful  EventType = "campaign_successful"
	EventTypeCampaignFailed      EventType = "campaign_failed"
	EventTypeCampaignCancelled   EventType = "campaign_cancelled"
	EventTypeRefundIssued        EventType = "refund_issued"
	EventTypeRefundFailed        EventType = "refund_failed"
	EventTypePaymentFailed       EventType = "payment_failed"
)

// EventData, bir bildirimi ve taşıdığı veriyi temsil eder
type EventData struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
}

// Observer, bildirim alan tarafların implement ettiği interface
type Observer interface {
	Update(event *EventData) error
	GetName() string
}

// Publisher, observer'ları yöneten ve bildirimleri dağıtan yapıdır
type Publisher struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewPublisher() *Publisher {
	return &Publisher{
		observers: make([]Observer, 0),
	}
}

func (p *Publisher) Attach(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
	log.Printf("[Notifications] Attached observer: %s", observer.GetName())
}

func (p *Publisher) Detach(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, obs := range p.observers {
		if obs.GetName() == observer.GetName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			log.Printf("[Notifications] Detached observer: %s", observer.GetName())
			return
		}
	}
}

// Notify, event'i kayıtlı tüm observer'lara asenkron dağıtır.
func (p *Publisher) Notify(event *EventData) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		go func(obs Observer) {
			if err := obs.Update(event); err != nil {
				log.Printf("[Notifications] Error notifying %s: %v", obs.GetName(), err)
			}
		}(observer)
	}
}

// -----------------------------------------------------------------------------
// Event Data Structures
// -----------------------------------------------------------------------------

// ParticipationNotice, katılım bildirimlerinde taşınan veridir
type ParticipationNotice struct {
	UserID        int64
	UserEmail     string
	UserName      string
	CampaignID    int64
	CampaignTitle string
	DepositAmount float64
	CurrentCount  int
	TargetCount   int
}

// PaymentNotice, ödeme bildirimlerinde taşınan veridir
type PaymentNotice struct {
	UserID        int64
	UserEmail     string
	CampaignTitle string
	Amount        float64
	TransactionID string
	VoucherCode   string
	ErrorMessage  string
}

// RefundNotice, iade bildirimlerinde taşınan veridir
type RefundNotice struct {
	UserID        int64
	UserEmail     string
	CampaignTitle string
	Amount        float64
	Reason        string
}

// CampaignNotice, kampanya durum bildirimlerinde taşınan veridir
type CampaignNotice struct {
	CampaignID    int64
	CampaignTitle string
	CurrentCount  int
	TargetCount   int
	Reason        string
}
