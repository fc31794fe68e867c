// -----------------------------------------------------------------------------
// Refund Deposit Job
// -----------------------------------------------------------------------------
// Gateway'e ulaşılamadığı için tamamlanamayan depozito iadelerini kuyruk
// üzerinden tekrar dener. Refund çağrısı idempotency key taşıdığı için job
// birden fazla kez çalışsa bile iade tek sefer gerçekleşir.
//
// Job worker tarafından deserialize edildiğinde servis bağımlılıkları boş
// olur; bunlar registry factory closure'ı üzerinden enjekte edilir.
// -----------------------------------------------------------------------------

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/biyonik/groupbuy-api/internal/gateway"
	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/queue"
)

// RefundJobType, registry'de kullanılan job tipi.
const RefundJobType = "*jobs.RefundDepositJob"

// PaymentUpdater, job'ın ödeme kaydını güncellemek için ihtiyaç duyduğu
// minimal store yüzeyidir.
type PaymentUpdater interface {
	FindByID(id int64) (*models.Payment, error)
	Update(payment *models.Payment) error
}

// RefundDepositJob, bekleyen bir depozito iadesini tamamlar.
type RefundDepositJob struct {
	queue.BaseJob

	PaymentID      int64   `json:"payment_id"`
	UserID         int64   `json:"user_id"`
	Amount         float64 `json:"amount"`
	TransactionID  string  `json:"transaction_id"`
	IdempotencyKey string  `json:"idempotency_key"`
	Reason         string  `json:"reason"`

	// Runtime bağımlılıklar (serialize edilmez)
	Gateway  gateway.PaymentGateway `json:"-"`
	Payments PaymentUpdater         `json:"-"`
}

// NewRefundDepositJob, bağımlılıkları bağlanmış boş bir job oluşturur.
// Registry factory'sinde kullanılır.
func NewRefundDepositJob(gw gateway.PaymentGateway, payments PaymentUpdater) *RefundDepositJob {
	return &RefundDepositJob{
		BaseJob: queue.BaseJob{
			Queue:       "refunds",
			MaxAttempts: 3,
		},
		Gateway:  gw,
		Payments: payments,
	}
}

// Handle, iadeyi gateway üzerinden tamamlar ve ödeme kaydını günceller.
func (j *RefundDepositJob) Handle() error {
	if j.Gateway == nil || j.Payments == nil {
		return fmt.Errorf("refund job bağımlılıkları bağlanmamış")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := j.Gateway.Refund(ctx, gateway.RefundRequest{
		UserID:         j.UserID,
		Amount:         j.Amount,
		TransactionID:  j.TransactionID,
		IdempotencyKey: j.IdempotencyKey,
		Reason:         j.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to refund deposit: %w", err)
	}

	payment, err := j.Payments.FindByID(j.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to load refund payment record: %w", err)
	}

	payment.Status = models.PaymentStatusSucceeded
	payment.TransactionID = result.RefundID
	payment.FailureReason = ""
	payment.Touch()

	if err := j.Payments.Update(payment); err != nil {
		return fmt.Errorf("failed to update refund payment record: %w", err)
	}

	log.Printf("✅ Depozito iadesi tamamlandı: payment=%d amount=%.2f", j.PaymentID, j.Amount)
	return nil
}

// Failed, tüm denemeler tükendiğinde çağrılır. Ödeme kaydı failed olarak
// işaretlenir; operasyon ekibi manuel iade yapar.
func (j *RefundDepositJob) Failed(err error) error {
	log.Printf("❌ Depozito iadesi kalıcı olarak başarısız: payment=%d err=%v", j.PaymentID, err)

	if j.Payments == nil {
		return nil
	}

	payment, loadErr := j.Payments.FindByID(j.PaymentID)
	if loadErr != nil {
		return loadErr
	}

	payment.Status = models.PaymentStatusFailed
	payment.FailureReason = err.Error()
	payment.Touch()

	return j.Payments.Update(payment)
}

// GetPayload, job'ı JSON'a serialize eder.
func (j *RefundDepositJob) GetPayload() ([]byte, error) {
	return json.Marshal(j)
}

// SetPayload, JSON'dan job'ı doldurur. Bağımlılıklar korunur.
func (j *RefundDepositJob) SetPayload(data []byte) error {
	gw, payments := j.Gateway, j.Payments
	if err := json.Unmarshal(data, j); err != nil {
		return err
	}
	j.Gateway = gw
	j.Payments = payments
	return nil
}
