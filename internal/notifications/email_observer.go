// -----------------------------------------------------------------------------
// Email Notification Observer
// -----------------------------------------------------------------------------
// Kampanya bildirimlerini email olarak gönderir. Mailer interface'i sayesinde
// SMTP yerine test double kullanılabilir.
// -----------------------------------------------------------------------------

package notifications

import (
	"fmt"
)

// Mailer, email gönderimini soyutlar. pkg/mail implementasyonu ya da test
// double bu interface üzerinden bağlanır.
type Mailer interface {
	SendPlain(to, subject, body string) error
}

// EmailObserver, bildirimleri email'e çevirir
type EmailObserver struct {
	mailer Mailer
}

func NewEmailObserver(mailer Mailer) *EmailObserver {
	return &EmailObserver{mailer: mailer}
}

func (o *EmailObserver) GetName() string {
	return "EmailObserver"
}

func (o *EmailObserver) Update(event *EventData) error {
	switch event.Type {
	case EventTypeParticipationJoined:
		return o.handleJoined(event)
	case EventTypeParticipationLeft:
		return o.handleLeft(event)
	case EventTypeFinalPaymentDone:
		return o.handleFinalPayment(event)
	case EventTypeRefundIssued:
		return o.handleRefund(event)
	case EventTypePaymentFailed:
		return o.handlePaymentFailed(event)
	}

	return nil
}

func (o *EmailObserver) handleJoined(event *EventData) error {
	data, ok := event.Data.(*ParticipationNotice)
	if !ok {
		return fmt.Errorf("invalid data type for participation joined event")
	}

	subject := fmt.Sprintf("Kampanyaya Katıldınız - %s", data.CampaignTitle)
	body := fmt.Sprintf(`
Sayın %s,

%s kampanyasına katılımınız alınmıştır.

Depozito: %.2f TL
Kampanya durumu: %d / %d katılımcı

Kampanya hedefe ulaştığında kalan tutarı ödeyerek yerinizi
kesinleştirebilirsiniz. Hedefe ulaşılamazsa depozitonuz iade edilir.

İyi günler dileriz.
`, data.UserName, data.CampaignTitle, data.DepositAmount, data.CurrentCount, data.TargetCount)

	return o.mailer.SendPlain(data.UserEmail, subject, body)
}

func (o *EmailObserver) handleLeft(event *EventData) error {
	data, ok := event.Data.(*ParticipationNotice)
	if !ok {
		return fmt.Errorf("invalid data type for participation left event")
	}

	subject := "Kampanyadan Ayrıldınız"
	body := fmt.Sprintf(`
Sayın %s,

%s kampanyasındaki katılımınız iptal edilmiştir.

İade tutarı: %.2f TL
İade süresi: 3-5 iş günü

İyi günler dileriz.
`, data.UserName, data.CampaignTitle, data.DepositAmount)

	return o.mailer.SendPlain(data.UserEmail, subject, body)
}

func (o *EmailObserver) handleFinalPayment(event *EventData) error {
	data, ok := event.Data.(*PaymentNotice)
	if !ok {
		return fmt.Errorf("invalid data type for final payment event")
	}

	subject := fmt.Sprintf("Ödemeniz Tamamlandı - %s", data.CampaignTitle)
	body := fmt.Sprintf(`
Sayın Katılımcı,

%s kampanyası için %.2f TL tutarındaki kalan ödemeniz alınmıştır.

İşlem No: %s
Teslimat Kodu: %s

Teslimat kodunuzu QR olarak uygulamadan görüntüleyebilirsiniz.

Teşekkür ederiz.
`, data.CampaignTitle, data.Amount, data.TransactionID, data.VoucherCode)

	return o.mailer.SendPlain(data.UserEmail, subject, body)
}

func (o *EmailObserver) handleRefund(event *EventData) error {
	data, ok := event.Data.(*RefundNotice)
	if !ok {
		return fmt.Errorf("invalid data type for refund event")
	}

	subject := "Depozito İadeniz Yapıldı"
	body := fmt.Sprintf(`
Sayın Katılımcı,

%s kampanyası için %.2f TL tutarındaki depozito iadeniz başlatılmıştır.

Sebep: %s
İade süresi: 3-5 iş günü

İyi günler dileriz.
`, data.CampaignTitle, data.Amount, data.Reason)

	return o.mailer.SendPlain(data.UserEmail, subject, body)
}

func (o *EmailObserver) handlePaymentFailed(event *EventData) error {
	data, ok := event.Data.(*PaymentNotice)
	if !ok {
		return fmt.Errorf("invalid data type for payment failed event")
	}

	subject := "Ödeme Başarısız"
	body := fmt.Sprintf(`
Sayın Katılımcı,

%s kampanyası için %.2f TL tutarındaki ödemeniz alınamadı.

Hata: %s

Lütfen ödeme bilgilerinizi kontrol edip tekrar deneyin.
`, data.CampaignTitle, data.Amount, data.ErrorMessage)

	return o.mailer.SendPlain(data.UserEmail, subject, body)
}
