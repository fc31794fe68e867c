// -----------------------------------------------------------------------------
// Sandbox Gateway
// -----------------------------------------------------------------------------
// Gerçek bir sağlayıcıya bağlanmadan çalışan in-memory gateway. Development
// ortamında ve testlerde kullanılır. Idempotency key'leri saklar; aynı key
// ile gelen istek yeni bir işlem oluşturmadan ilk sonucu döndürür.
//
// Hata enjeksiyonu:
// DeclineNext ve FailNetwork ile sıradaki çağrıların hata üretmesi
// sağlanabilir. Retry ve compensation akışlarını test etmek için kullanılır.
// -----------------------------------------------------------------------------

package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/biyonik/groupbuy-api/pkg/token"
)

// SandboxGateway, in-memory payment gateway implementasyonudur.
type SandboxGateway struct {
	mu sync.Mutex

	charges map[string]*ChargeResult // idempotency key -> sonuç
	refunds map[string]*RefundResult

	declineNext  int // Sıradaki N charge ErrDeclined döner
	networkFails int // Sıradaki N çağrı ErrNetworkError döner

	chargeCount int64
	refundCount int64
}

// NewSandboxGateway, yeni bir SandboxGateway oluşturur.
func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{
		charges: make(map[string]*ChargeResult),
		refunds: make(map[string]*RefundResult),
	}
}

// DeclineNext, sıradaki n charge çağrısının reddedilmesini sağlar.
func (g *SandboxGateway) DeclineNext(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.declineNext = n
}

// FailNetwork, sıradaki n çağrının network hatası üretmesini sağlar.
func (g *SandboxGateway) FailNetwork(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.networkFails = n
}

// ChargeCount, başarıyla tamamlanan tahsilat sayısını döndürür.
func (g *SandboxGateway) ChargeCount() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.chargeCount
}

// RefundCount, başarıyla tamamlanan iade sayısını döndürür.
func (g *SandboxGateway) RefundCount() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refundCount
}

// Charge, tutarı tahsil eder. Aynı idempotency key ile tekrar çağrılırsa
// yeni işlem oluşturmadan ilk sonucu döndürür.
func (g *SandboxGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key zorunludur")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Idempotent replay: ilk sonucu döndür
	if result, ok := g.charges[req.IdempotencyKey]; ok {
		return result, nil
	}

	if g.networkFails > 0 {
		g.networkFails--
		return nil, ErrNetworkError
	}

	if g.declineNext > 0 {
		g.declineNext--
		return nil, ErrDeclined
	}

	if req.Amount <= 0 {
		return nil, fmt.Errorf("geçersiz tutar: %.2f", req.Amount)
	}

	result := &ChargeResult{
		TransactionID: "txn_" + token.MustGenerateSecureToken(16),
		Amount:        req.Amount,
	}
	g.charges[req.IdempotencyKey] = result
	g.chargeCount++

	return result, nil
}

// Refund, daha önce tahsil edilen bir işlemi iade eder. Charge gibi
// idempotency key üzerinden replay korumalıdır.
func (g *SandboxGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("idempotency key zorunludur")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if result, ok := g.refunds[req.IdempotencyKey]; ok {
		return result, nil
	}

	if g.networkFails > 0 {
		g.networkFails--
		return nil, ErrNetworkError
	}

	if req.Amount <= 0 {
		return nil, fmt.Errorf("geçersiz tutar: %.2f", req.Amount)
	}

	result := &RefundResult{
		RefundID: "re_" + token.MustGenerateSecureToken(16),
		Amount:   req.Amount,
	}
	g.refunds[req.IdempotencyKey] = result
	g.refundCount++

	return result, nil
}
