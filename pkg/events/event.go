// -----------------------------------------------------------------------------
// Event System - Core Types
// -----------------------------------------------------------------------------
// Event-driven architecture için temel yapılar. Bir event, sistemde meydana
// gelen önemli bir durumu temsil eder (user.registered, campaign.successful).
// Dispatcher'a kayıtlı listener'lar event dispatch edildiğinde çalıştırılır.
// -----------------------------------------------------------------------------

package events

import (
	"time"
)

// Event, tüm event'lerin implement ettiği interface'dir.
type Event interface {
	// Name, event'in benzersiz adını döndürür ("user.registered" gibi).
	Name() string

	// OccurredAt, event'in gerçekleşme zamanını döndürür.
	OccurredAt() time.Time

	// Payload, event ile taşınan veriyi döndürür.
	Payload() interface{}
}

// BaseEvent, custom event'ler için temel yapıdır. Embed edildiğinde Name ve
// OccurredAt otomatik gelir.
type BaseEvent struct {
	name       string
	occurredAt time.Time
	payload    interface{}
}

// NewBaseEvent, yeni bir BaseEvent oluşturur.
//
//	event := events.NewBaseEvent(events.EventCampaignSuccessful, campaign)
func NewBaseEvent(name string, payload interface{}) *BaseEvent {
	return &BaseEvent{
		name:       name,
		occurredAt: time.Now(),
		payload:    payload,
	}
}

func (e *BaseEvent) Name() string {
	return e.name
}

func (e *BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *BaseEvent) Payload() interface{} {
	return e.payload
}

// SetPayload, event verisini günceller. BaseEvent'i embed eden struct'lar
// için kullanışlıdır.
func (e *BaseEvent) SetPayload(payload interface{}) {
	e.payload = payload
}

// Uygulama genelinde kullanılan event adları.
const (
	// User events
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged.in"
	EventUserBanned     = "user.banned"

	// Campaign events
	EventCampaignCreated    = "campaign.created"
	EventCampaignSuccessful = "campaign.successful"
	EventCampaignFailed     = "campaign.failed"
	EventCampaignCancelled  = "campaign.cancelled"

	// Payment events
	EventPaymentReceived = "payment.received"
	EventPaymentFailed   = "payment.failed"
	EventPaymentRefunded = "payment.refunded"
)

// NewUserRegisteredEvent, kullanıcı kaydı event'i oluşturur.
func NewUserRegisteredEvent(user interface{}) Event {
	return NewBaseEvent(EventUserRegistered, user)
}

// NewUserLoggedInEvent, kullanıcı login event'i oluşturur.
func NewUserLoggedInEvent(user interface{}) Event {
	return NewBaseEvent(EventUserLoggedIn, user)
}

// NewPaymentReceivedEvent, ödeme alındı event'i oluşturur.
func NewPaymentReceivedEvent(payment interface{}) Event {
	return NewBaseEvent(EventPaymentReceived, payment)
}
