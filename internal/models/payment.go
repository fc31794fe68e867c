// -----------------------------------------------------------------------------
// Payment Model
// -----------------------------------------------------------------------------
// Ödeme kayıtlarını temsil eder. Her depozito, kalan ödeme ve iade işlemi
// ayrı bir Payment kaydı olarak saklanır. IdempotencyKey, gateway tarafında
// aynı işlemin iki kez tahsil edilmesini önler.
// -----------------------------------------------------------------------------

package models

// PaymentKind, ödeme tipini temsil eder
type PaymentKind string

const (
	PaymentKindDeposit PaymentKind = "deposit"
	PaymentKindFinal   PaymentKind = "final"
	PaymentKindRefund  PaymentKind = "refund"
)

// PaymentStatus, ödeme durumunu temsil eder
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment, tek bir ödeme ya da iade işlemini temsil eder
type Payment struct {
	BaseModel
	ParticipationID int64         `json:"participation_id" db:"participation_id"`
	CampaignID      int64         `json:"campaign_id" db:"campaign_id"`
	UserID          int64         `json:"user_id" db:"user_id"`
	Amount          float64       `json:"amount" db:"amount"`
	Kind            PaymentKind   `json:"kind" db:"kind"`
	Status          PaymentStatus `json:"status" db:"status"`
	IdempotencyKey  string        `json:"idempotency_key" db:"idempotency_key"`
	TransactionID   string        `json:"transaction_id,omitempty" db:"transaction_id"`
	FailureReason   string        `json:"failure_reason,omitempty" db:"failure_reason"`
}

// IsSucceeded, ödemenin başarıyla tamamlanıp tamamlanmadığını kontrol eder
func (p *Payment) IsSucceeded() bool {
	return p.Status == PaymentStatusSucceeded
}
