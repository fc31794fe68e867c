// -----------------------------------------------------------------------------
// Campaign Model
// -----------------------------------------------------------------------------
// Grup satın alma kampanyalarını temsil eder. Bir kampanya, hedeflenen
// katılımcı sayısına (TargetCount) son tarihten (Deadline) önce ulaşırsa
// başarılı olur; ulaşamazsa başarısız sayılır ve depozitolar iade edilir.
// -----------------------------------------------------------------------------

package models

import (
	"time"
)

// CampaignStatus, kampanya durumunu temsil eder
type CampaignStatus string

const (
	CampaignStatusPending    CampaignStatus = "pending"
	CampaignStatusActive     CampaignStatus = "active"
	CampaignStatusSuccessful CampaignStatus = "successful"
	CampaignStatusFailed     CampaignStatus = "failed"
	CampaignStatusCancelled  CampaignStatus = "cancelled"
)

// DepositRate, katılım sırasında tahsil edilen depozito oranı.
// Kalan tutar kampanya başarılı olduğunda tahsil edilir.
const DepositRate = 0.10

// CampaignFilter, kampanya listeleme filtrelerini temsil eder
type CampaignFilter struct {
	Page     int
	PerPage  int
	Status   CampaignStatus
	Category string
	Search   string
}

// Campaign, bir grup satın alma kampanyasını temsil eder.
//
// RegularPrice, ürünün tekil satış fiyatıdır; DiscountedPrice ise hedefe
// ulaşıldığında katılımcıların ödeyeceği grup fiyatıdır
// (DiscountedPrice ≤ RegularPrice). Depozito RegularPrice üzerinden,
// kalan ödeme DiscountedPrice üzerinden hesaplanır.
type Campaign struct {
	BaseModel
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	Category        string         `json:"category" db:"category"`
	ImageURL        string         `json:"image_url,omitempty" db:"image_url"`
	RegularPrice    float64        `json:"regular_price" db:"regular_price"`
	DiscountedPrice float64        `json:"discounted_price" db:"discounted_price"`
	TargetCount     int            `json:"target_count" db:"target_count"`
	CurrentCount    int            `json:"current_count" db:"current_count"`
	StartsAt        time.Time      `json:"starts_at" db:"starts_at"`
	Deadline        time.Time      `json:"deadline" db:"deadline"`
	Status          CampaignStatus `json:"status" db:"status"`
	CreatorID       int64          `json:"creator_id" db:"creator_id"`
	Version         int64          `json:"version" db:"version"`
	DeletedAt       *time.Time     `json:"-" db:"deleted_at"`

	// İlişkili veriler
	Creator *User `json:"creator,omitempty" db:"-"`
}

// IsActive, kampanyaya şu an katılım yapılıp yapılamayacağını kontrol eder
func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive && time.Now().Before(c.Deadline)
}

// IsExpired, son tarihin geçip geçmediğini kontrol eder
func (c *Campaign) IsExpired() bool {
	return time.Now().After(c.Deadline)
}

// IsTerminal, kampanyanın nihai bir durumda olup olmadığını kontrol eder.
// Nihai durumdaki kampanyalar bir daha durum değiştirmez; Finalize bu
// durumlarda idempotent davranır.
func (c *Campaign) IsTerminal() bool {
	switch c.Status {
	case CampaignStatusSuccessful, CampaignStatusFailed, CampaignStatusCancelled:
		return true
	}
	return false
}

// IsFull, hedeflenen katılımcı sayısına ulaşılıp ulaşılmadığını kontrol eder
func (c *Campaign) IsFull() bool {
	return c.CurrentCount >= c.TargetCount
}

// HasCapacityFor, istenen slot sayısının mevcut kapasiteye sığıp
// sığmadığını kontrol eder
func (c *Campaign) HasCapacityFor(quantity int) bool {
	return c.CurrentCount+quantity <= c.TargetCount
}

// DepositFor, verilen slot sayısı için katılım sırasında tahsil edilecek
// depozito tutarını hesaplar. Depozito normal fiyat üzerinden alınır.
func (c *Campaign) DepositFor(quantity int) float64 {
	return c.RegularPrice * DepositRate * float64(quantity)
}

// FinalPaymentFor, kampanya başarılı olduğunda tahsil edilecek kalan tutarı
// hesaplar: indirimli toplam fiyattan ödenen depozito düşülür.
func (c *Campaign) FinalPaymentFor(quantity int) float64 {
	return c.DiscountedPrice*float64(quantity) - c.DepositFor(quantity)
}

// GetFillRate, doluluk oranını hesaplar (%)
func (c *Campaign) GetFillRate() float64 {
	if c.TargetCount == 0 {
		return 0
	}
	return (float64(c.CurrentCount) / float64(c.TargetCount)) * 100
}

// CanTransitionTo, mevcut durumdan hedef duruma geçişin geçerli olup
// olmadığını kontrol eder.
//
// Geçiş tablosu:
//   - pending    → active, cancelled
//   - active     → successful, failed, cancelled
//   - successful → active (bir slot boşalıp hedefin altına düşüldüğünde)
//   - failed, cancelled → geçiş yok
func (c *Campaign) CanTransitionTo(target CampaignStatus) bool {
	switch c.Status {
	case CampaignStatusPending:
		return target == CampaignStatusActive || target == CampaignStatusCancelled
	case CampaignStatusActive:
		return target == CampaignStatusSuccessful ||
			target == CampaignStatusFailed ||
			target == CampaignStatusCancelled
	case CampaignStatusSuccessful:
		return target == CampaignStatusActive
	}
	return false
}
