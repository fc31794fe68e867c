// -----------------------------------------------------------------------------
// Payment Gateway
// -----------------------------------------------------------------------------
// Bu dosya, ödeme sağlayıcısı ile konuşan soyutlamayı içerir. Servis katmanı
// gateway'in hangi sağlayıcı olduğunu bilmez; sadece Charge ve Refund çağırır.
//
// Idempotency:
// Her Charge/Refund çağrısı bir idempotency key taşır. Aynı key ile tekrar
// edilen çağrı, yeni bir tahsilat yapmadan ilk sonucu döndürmelidir. Bu
// sayede network hatası sonrası retry güvenlidir.
//
// Hata Sözleşmesi:
//   - ErrDeclined:     Kart reddedildi. Nihai hatadır, retry edilmez.
//   - ErrNetworkError: Sağlayıcıya ulaşılamadı. Geçicidir, retry edilebilir.
// -----------------------------------------------------------------------------

package gateway

import (
	"context"
	"errors"
)

var (
	// ErrDeclined, sağlayıcının ödemeyi reddettiğini belirtir. Nihai hatadır.
	ErrDeclined = errors.New("payment declined")

	// ErrNetworkError, sağlayıcıya ulaşılamadığını belirtir. Retry edilebilir.
	ErrNetworkError = errors.New("payment gateway unreachable")
)

// ChargeRequest, bir tahsilat isteğini temsil eder.
type ChargeRequest struct {
	UserID          int64
	Amount          float64
	Currency        string
	PaymentMethodID string
	IdempotencyKey  string
	Description     string
}

// ChargeResult, başarılı bir tahsilatın sonucunu temsil eder.
type ChargeResult struct {
	TransactionID string
	Amount        float64
}

// RefundRequest, bir iade isteğini temsil eder.
type RefundRequest struct {
	UserID         int64
	Amount         float64
	Currency       string
	TransactionID  string // İade edilecek orijinal işlem
	IdempotencyKey string
	Reason         string
}

// RefundResult, başarılı bir iadenin sonucunu temsil eder.
type RefundResult struct {
	RefundID string
	Amount   float64
}

// PaymentGateway, ödeme sağlayıcısı soyutlamasıdır.
type PaymentGateway interface {
	// Charge, verilen tutarı tahsil eder.
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)

	// Refund, daha önce tahsil edilen bir işlemi iade eder.
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
}
