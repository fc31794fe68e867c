// -----------------------------------------------------------------------------
// Retrying Gateway Decorator
// -----------------------------------------------------------------------------
// Herhangi bir PaymentGateway'i sarar ve sadece geçici (network) hataları
// retry eder. ErrDeclined nihai olduğu için asla retry edilmez. Çağrılar
// idempotency key taşıdığı için retry güvenlidir.
// -----------------------------------------------------------------------------

package gateway

import (
	"context"
	"errors"
	"time"
)

// RetryingGateway, geçici hatalarda retry yapan gateway decorator'ıdır.
type RetryingGateway struct {
	inner       PaymentGateway
	maxAttempts int
	baseDelay   time.Duration
}

// NewRetryingGateway, yeni bir RetryingGateway oluşturur.
//
// maxAttempts toplam deneme sayısıdır (ilk çağrı dahil). baseDelay her
// denemede ikiye katlanır: 200ms, 400ms, 800ms...
func NewRetryingGateway(inner PaymentGateway, maxAttempts int, baseDelay time.Duration) *RetryingGateway {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 200 * time.Millisecond
	}
	return &RetryingGateway{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// Charge, tahsilatı yapar; network hatalarında bekleyip tekrar dener.
func (g *RetryingGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	var result *ChargeResult
	err := g.withRetry(ctx, func() error {
		var innerErr error
		result, innerErr = g.inner.Charge(ctx, req)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Refund, iadeyi yapar; network hatalarında bekleyip tekrar dener.
func (g *RetryingGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	var result *RefundResult
	err := g.withRetry(ctx, func() error {
		var innerErr error
		result, innerErr = g.inner.Refund(ctx, req)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// withRetry, fn'i çalıştırır; sadece ErrNetworkError durumunda tekrar dener.
func (g *RetryingGateway) withRetry(ctx context.Context, fn func() error) error {
	delay := g.baseDelay
	var lastErr error

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		// Nihai hatalar retry edilmez
		if !errors.Is(lastErr, ErrNetworkError) {
			return lastErr
		}

		if attempt == g.maxAttempts {
			break
		}

		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
