// -----------------------------------------------------------------------------
// Sweep Scheduler Service
// -----------------------------------------------------------------------------
// Deadline'ı geçtiği halde hala active durumda kalan kampanyaları periyodik
// olarak sonuçlandırır. Hedefe ulaşmış kampanyalar successful, ulaşamayanlar
// failed olur; failed kampanyaların depozitoları iade edilir.
//
// Tek uçuş garantisi: bir tarama bitmeden yenisi başlamaz. Bir kampanyanın
// hatası diğerlerini etkilemez; hata loglanır ve taramaya devam edilir.
// -----------------------------------------------------------------------------

package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/internal/notifications"
)

// SweepScheduler, süresi dolan kampanyaları sonuçlandıran zamanlayıcıdır.
type SweepScheduler struct {
	ledger         *CampaignLedger
	campaigns      CampaignQueryStore
	participations *ParticipationManager
	notifier       *notifications.Publisher
	logger         *log.Logger

	interval   time.Duration
	batchLimit int

	running atomic.Bool // Tek uçuş: overlapping tick koruması
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSweepScheduler, yeni bir SweepScheduler oluşturur.
func NewSweepScheduler(
	ledger *CampaignLedger,
	campaigns CampaignQueryStore,
	participations *ParticipationManager,
	notifier *notifications.Publisher,
	logger *log.Logger,
	interval time.Duration,
) *SweepScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweepScheduler{
		ledger:         ledger,
		campaigns:      campaigns,
		participations: participations,
		notifier:       notifier,
		logger:         logger,
		interval:       interval,
		batchLimit:     100,
	}
}

// SetBatchLimit, tek turda sonuçlandırılacak maksimum kampanya sayısını
// ayarlar (method chaining).
func (s *SweepScheduler) SetBatchLimit(limit int) *SweepScheduler {
	if limit > 0 {
		s.batchLimit = limit
	}
	return s
}

// Start, periyodik taramayı başlatır.
func (s *SweepScheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Printf("⏱️  Sweep scheduler başlatıldı (interval: %s)", s.interval)

		for {
			select {
			case <-ticker.C:
				if _, err := s.RunOnce(ctx); err != nil {
					s.logger.Printf("❌ Sweep turu başarısız: %v", err)
				}
			case <-ctx.Done():
				s.logger.Println("🛑 Sweep scheduler durduruldu")
				return
			}
		}
	}()
}

// Stop, zamanlayıcıyı gracefully durdurur.
func (s *SweepScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunOnce, tek bir tarama turu yapar ve sonuçlandırılan kampanya sayısını
// döndürür. Önceki tur hala çalışıyorsa hiçbir şey yapmaz.
func (s *SweepScheduler) RunOnce(ctx context.Context) (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer s.running.Store(false)

	expired, err := s.campaigns.GetExpiredUnresolved(s.batchLimit)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := range expired {
		campaign := &expired[i]

		if err := s.resolveCampaign(ctx, campaign); err != nil {
			// Hata izolasyonu: tek kampanyanın hatası turu durdurmaz
			s.logger.Printf("❌ Kampanya sonuçlandırılamadı [%d]: %v", campaign.ID, err)
			continue
		}
		resolved++
	}

	if resolved > 0 {
		s.logger.Printf("🔄 Sweep turu tamamlandı: %d kampanya sonuçlandırıldı", resolved)
	}

	return resolved, nil
}

// resolveCampaign, tek bir kampanyayı sonuçlandırır ve gerekiyorsa iadeleri
// başlatır.
func (s *SweepScheduler) resolveCampaign(ctx context.Context, campaign *models.Campaign) error {
	finalized, err := s.ledger.Finalize(ctx, campaign.ID)
	if err != nil {
		return err
	}

	switch finalized.Status {
	case models.CampaignStatusSuccessful:
		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypeCampaignSuccessful,
			Data: &notifications.CampaignNotice{
				CampaignID:    finalized.ID,
				CampaignTitle: finalized.Title,
				CurrentCount:  finalized.CurrentCount,
				TargetCount:   finalized.TargetCount,
			},
		})

	case models.CampaignStatusFailed:
		refunded, err := s.participations.RefundCampaignParticipants(ctx, finalized.ID, "Kampanya hedefe ulaşamadı")
		if err != nil {
			return err
		}
		s.logger.Printf("📢 Kampanya başarısız: campaign=%d, %d iade başlatıldı", finalized.ID, refunded)

		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypeCampaignFailed,
			Data: &notifications.CampaignNotice{
				CampaignID:    finalized.ID,
				CampaignTitle: finalized.Title,
				CurrentCount:  finalized.CurrentCount,
				TargetCount:   finalized.TargetCount,
				Reason:        "Deadline doldu, hedefe ulaşılamadı",
			},
		})
	}

	return nil
}
