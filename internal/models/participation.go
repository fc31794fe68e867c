// -----------------------------------------------------------------------------
// Participation Model
// -----------------------------------------------------------------------------
// Bir kullanıcının bir kampanyaya katılımını temsil eder. Katılım sırasında
// depozito tahsil edilir; kampanya başarılı olduğunda kalan tutar ödenir.
// -----------------------------------------------------------------------------

package models

import (
	"time"
)

// ParticipationStatus, katılım durumunu temsil eder
type ParticipationStatus string

const (
	ParticipationStatusPending   ParticipationStatus = "pending"
	ParticipationStatusActive    ParticipationStatus = "active"
	ParticipationStatusCompleted ParticipationStatus = "completed"
	ParticipationStatusCancelled ParticipationStatus = "cancelled"
	ParticipationStatusRefunded  ParticipationStatus = "refunded"
)

// Participation, bir kullanıcının bir kampanyadaki yerini temsil eder.
// Quantity, bu katılımın tükettiği slot sayısıdır; kampanyanın
// CurrentCount değeri aktif katılımların Quantity toplamına eşittir.
type Participation struct {
	BaseModel
	CampaignID         int64               `json:"campaign_id" db:"campaign_id"`
	UserID             int64               `json:"user_id" db:"user_id"`
	Quantity           int                 `json:"quantity" db:"quantity"`
	Status             ParticipationStatus `json:"status" db:"status"`
	DepositAmount      float64             `json:"deposit_amount" db:"deposit_amount"`
	DepositPaid        bool                `json:"deposit_paid" db:"deposit_paid"`
	FinalPaymentAmount float64             `json:"final_payment_amount" db:"final_payment_amount"`
	FinalPaymentPaid   bool                `json:"final_payment_paid" db:"final_payment_paid"`
	VoucherCode        string              `json:"voucher_code,omitempty" db:"voucher_code"`
	JoinedAt           time.Time           `json:"joined_at" db:"joined_at"`

	// İlişkili veriler
	Campaign *Campaign `json:"campaign,omitempty" db:"-"`
	User     *User     `json:"user,omitempty" db:"-"`
}

// IsActive, katılımın halen geçerli olup olmadığını kontrol eder
func (p *Participation) IsActive() bool {
	return p.Status == ParticipationStatusActive
}

// IsSettled, katılımın nihai bir durumda olup olmadığını kontrol eder
func (p *Participation) IsSettled() bool {
	switch p.Status {
	case ParticipationStatusCompleted, ParticipationStatusCancelled, ParticipationStatusRefunded:
		return true
	}
	return false
}

// CanLeave, katılımcının kampanyadan ayrılıp ayrılamayacağını kontrol eder.
// Sadece aktif katılımlar, kampanya nihai duruma geçmeden önce iptal edilebilir.
func (p *Participation) CanLeave() bool {
	return p.Status == ParticipationStatusActive && !p.FinalPaymentPaid
}

// CanPayFinal, kalan tutarın ödenip ödenemeyeceğini kontrol eder
func (p *Participation) CanPayFinal() bool {
	return p.Status == ParticipationStatusActive && p.DepositPaid && !p.FinalPaymentPaid
}

// TotalPaid, bu katılım için şu ana kadar ödenen toplam tutarı hesaplar
func (p *Participation) TotalPaid() float64 {
	var total float64
	if p.DepositPaid {
		total += p.DepositAmount
	}
	if p.FinalPaymentPaid {
		total += p.FinalPaymentAmount
	}
	return total
}
