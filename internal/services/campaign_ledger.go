// -----------------------------------------------------------------------------
// Campaign Ledger Service
// -----------------------------------------------------------------------------
// Kampanya slot muhasebesinin tek sahibi. Slot rezervasyonu, slot iadesi ve
// kampanya sonuçlandırma buradan geçer; başka hiçbir katman CurrentCount
// veya Status alanlarını doğrudan değiştirmez.
//
// Eşzamanlılık modeli:
// Her kampanya kaydı bir version alanı taşır. Güncellemeler
// "WHERE id = ? AND version = ?" koşuluyla yapılır (optimistic concurrency).
// Güncelleme tutmazsa kayıt yeniden okunur ve işlem tekrarlanır. Retry
// limiti aşılırsa ErrConflict döner; istemci işlemi tekrar deneyebilir.
//
// Önemli kurallar:
//   - Hedef sayıya ulaşan rezervasyon kampanyayı aynı yazma içinde
//     successful durumuna geçirir.
//   - Slot iadesi, successful bir kampanyayı hedefin altına düşürüyorsa
//     kampanyayı active durumuna geri alır.
//   - Finalize idempotenttir: nihai durumdaki kampanya için mevcut durumu
//     döndürür, hata üretmez.
// -----------------------------------------------------------------------------

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
)

// casRetryLimit, version çakışmasında yapılacak maksimum deneme sayısı.
const casRetryLimit = 5

// CampaignStore, ledger'ın ihtiyaç duyduğu kampanya erişimini tanımlar.
// MySQL implementasyonu repositories paketindedir; testlerde in-memory
// bir store kullanılır.
type CampaignStore interface {
	// FindByID, kampanyayı döndürür. Bulunamazsa sql.ErrNoRows döner.
	FindByID(id int64) (*models.Campaign, error)

	// UpdateCAS, kampanyayı version koşuluyla günceller. Version tutmazsa
	// (false, nil) döner; çağıran taraf kaydı yeniden okuyup tekrar dener.
	UpdateCAS(campaign *models.Campaign) (bool, error)
}

// CampaignLedger, kampanya slot muhasebesini yöneten servistir.
type CampaignLedger struct {
	store CampaignStore
	now   func() time.Time
}

// NewCampaignLedger, yeni bir CampaignLedger oluşturur.
func NewCampaignLedger(store CampaignStore) *CampaignLedger {
	return &CampaignLedger{
		store: store,
		now:   time.Now,
	}
}

// SetClock, zaman kaynağını değiştirir. Deadline senaryolarını test etmek
// için kullanılır.
func (l *CampaignLedger) SetClock(now func() time.Time) {
	l.now = now
}

// ReserveSlot, kampanyada quantity adet slot rezerve eder.
//
// Akış:
//  1. Kampanyayı oku
//  2. Katılıma açık mı kontrol et (durum + deadline + kapasite)
//  3. CurrentCount'u quantity kadar artır; hedefe ulaşıldıysa aynı yazmada
//     successful yap
//  4. Version koşuluyla yaz; çakışmada baştan dene
//
// Kalan kapasiteye sığmayan talepler kısmen değil, bütün olarak reddedilir
// (ErrCapacityExceeded). Rezervasyon kalıcıdır; ödeme başarısız olursa
// çağıran taraf ReleaseSlot ile telafi eder.
func (l *CampaignLedger) ReserveSlot(ctx context.Context, campaignID int64, quantity int) (*models.Campaign, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity: en az 1 olmalıdır", ErrValidation)
	}

	for attempt := 0; attempt < casRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		campaign, err := l.load(campaignID)
		if err != nil {
			return nil, err
		}

		if campaign.Status != models.CampaignStatusActive {
			return nil, ErrCampaignNotActive
		}
		if l.now().After(campaign.Deadline) {
			return nil, ErrCampaignNotActive
		}
		if !campaign.HasCapacityFor(quantity) {
			return nil, ErrCapacityExceeded
		}

		campaign.CurrentCount += quantity
		if campaign.IsFull() {
			// Son slot doldu: kampanya aynı yazma içinde başarıya geçer
			campaign.Status = models.CampaignStatusSuccessful
		}
		campaign.Touch()

		ok, err := l.store.UpdateCAS(campaign)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve slot: %w", err)
		}
		if ok {
			return campaign, nil
		}
	}

	return nil, ErrConflict
}

// ReleaseSlot, daha önce rezerve edilen quantity adet slotu iade eder.
//
// Ödeme başarısız olduğunda compensation olarak ve katılımcı ayrıldığında
// çağrılır. Sayaç hiçbir zaman sıfırın altına inmez. Successful bir kampanya
// hedefin altına düşerse active durumuna geri alınır.
func (l *CampaignLedger) ReleaseSlot(ctx context.Context, campaignID int64, quantity int) (*models.Campaign, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity: en az 1 olmalıdır", ErrValidation)
	}

	for attempt := 0; attempt < casRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		campaign, err := l.load(campaignID)
		if err != nil {
			return nil, err
		}

		if campaign.CurrentCount <= 0 {
			return campaign, nil
		}

		release := quantity
		if release > campaign.CurrentCount {
			release = campaign.CurrentCount
		}

		campaign.CurrentCount -= release
		if campaign.Status == models.CampaignStatusSuccessful && !campaign.IsFull() {
			// Hedefin altına düşüldü: kampanya tekrar katılıma açılır
			campaign.Status = models.CampaignStatusActive
		}
		campaign.Touch()

		ok, err := l.store.UpdateCAS(campaign)
		if err != nil {
			return nil, fmt.Errorf("failed to release slot: %w", err)
		}
		if ok {
			return campaign, nil
		}
	}

	return nil, ErrConflict
}

// Finalize, kampanyayı sonuçlandırır.
//
// Nihai durumdaki kampanya için mevcut durumu döndürür (idempotent).
// Aktif bir kampanya hedefe ulaşmışsa successful, deadline geçmişse failed
// olur. Henüz sonuçlandırılamayacak bir kampanya için
// ErrInvalidStateTransition döner.
func (l *CampaignLedger) Finalize(ctx context.Context, campaignID int64) (*models.Campaign, error) {
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		campaign, err := l.load(campaignID)
		if err != nil {
			return nil, err
		}

		// Idempotent: zaten sonuçlanmış kampanya olduğu gibi döner
		if campaign.IsTerminal() {
			return campaign, nil
		}

		var target models.CampaignStatus
		switch {
		case campaign.Status == models.CampaignStatusActive && campaign.IsFull():
			target = models.CampaignStatusSuccessful
		case campaign.Status == models.CampaignStatusActive && l.now().After(campaign.Deadline):
			target = models.CampaignStatusFailed
		default:
			return nil, ErrInvalidStateTransition
		}

		if !campaign.CanTransitionTo(target) {
			return nil, ErrInvalidStateTransition
		}

		campaign.Status = target
		campaign.Touch()

		ok, err := l.store.UpdateCAS(campaign)
		if err != nil {
			return nil, fmt.Errorf("failed to finalize campaign: %w", err)
		}
		if ok {
			return campaign, nil
		}
	}

	return nil, ErrConflict
}

// ForceCancel, kampanyayı yönetici kararıyla iptal eder. Nihai durumdaki
// kampanyalar iptal edilemez.
func (l *CampaignLedger) ForceCancel(ctx context.Context, campaignID int64) (*models.Campaign, error) {
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		campaign, err := l.load(campaignID)
		if err != nil {
			return nil, err
		}

		if !campaign.CanTransitionTo(models.CampaignStatusCancelled) {
			return nil, ErrInvalidStateTransition
		}

		campaign.Status = models.CampaignStatusCancelled
		campaign.Touch()

		ok, err := l.store.UpdateCAS(campaign)
		if err != nil {
			return nil, fmt.Errorf("failed to cancel campaign: %w", err)
		}
		if ok {
			return campaign, nil
		}
	}

	return nil, ErrConflict
}

// Activate, pending durumdaki kampanyayı katılıma açar.
func (l *CampaignLedger) Activate(ctx context.Context, campaignID int64) (*models.Campaign, error) {
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		campaign, err := l.load(campaignID)
		if err != nil {
			return nil, err
		}

		if campaign.Status != models.CampaignStatusPending {
			return nil, ErrInvalidStateTransition
		}

		campaign.Status = models.CampaignStatusActive
		campaign.Touch()

		ok, err := l.store.UpdateCAS(campaign)
		if err != nil {
			return nil, fmt.Errorf("failed to activate campaign: %w", err)
		}
		if ok {
			return campaign, nil
		}
	}

	return nil, ErrConflict
}

// load, kampanyayı okur ve sql.ErrNoRows'u ErrNotFound'a çevirir.
func (l *CampaignLedger) load(campaignID int64) (*models.Campaign, error) {
	campaign, err := l.store.FindByID(campaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return campaign, nil
}
