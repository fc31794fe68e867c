// -----------------------------------------------------------------------------
// Admin Override Service
// -----------------------------------------------------------------------------
// Yönetici müdahalelerini yönetir: kampanya iptali (iadeleriyle birlikte),
// kullanıcı banlama ve operasyon paneli istatistikleri.
// -----------------------------------------------------------------------------

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/internal/notifications"
	"github.com/biyonik/groupbuy-api/pkg/queue"
)

// AdminService, yönetici işlemlerini yöneten servistir.
type AdminService struct {
	ledger         *CampaignLedger
	campaigns      CampaignQueryStore
	users          UserStore
	payments       PaymentStore
	participations *ParticipationManager
	jobQueue       queue.Queue
	notifier       *notifications.Publisher
	logger         *log.Logger
}

// NewAdminService, yeni bir AdminService oluşturur.
func NewAdminService(
	ledger *CampaignLedger,
	campaigns CampaignQueryStore,
	users UserStore,
	payments PaymentStore,
	participations *ParticipationManager,
	jobQueue queue.Queue,
	notifier *notifications.Publisher,
	logger *log.Logger,
) *AdminService {
	return &AdminService{
		ledger:         ledger,
		campaigns:      campaigns,
		users:          users,
		payments:       payments,
		participations: participations,
		jobQueue:       jobQueue,
		notifier:       notifier,
		logger:         logger,
	}
}

// ForceCancel, kampanyayı yönetici kararıyla iptal eder ve depozito ödemiş
// katılımcılara iade başlatır. Nihai durumdaki kampanyalar iptal edilemez.
func (s *AdminService) ForceCancel(ctx context.Context, campaignID int64, reason string) (*models.Campaign, error) {
	campaign, err := s.ledger.ForceCancel(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	refunded, err := s.participations.RefundCampaignParticipants(ctx, campaignID, "Kampanya iptal edildi")
	if err != nil {
		// İptal gerçekleşti; iade hatası ayrıca raporlanır
		s.logger.Printf("❌ İptal sonrası iadeler başlatılamadı [campaign=%d]: %v", campaignID, err)
	}

	s.logger.Printf("⚡ Kampanya iptal edildi: campaign=%d reason=%q, %d iade başlatıldı", campaignID, reason, refunded)

	s.notifier.Notify(&notifications.EventData{
		Type: notifications.EventTypeCampaignCancelled,
		Data: &notifications.CampaignNotice{
			CampaignID:    campaign.ID,
			CampaignTitle: campaign.Title,
			CurrentCount:  campaign.CurrentCount,
			TargetCount:   campaign.TargetCount,
			Reason:        reason,
		},
	})

	return campaign, nil
}

// BanUser, kullanıcıyı yeni katılımlara kapatır. Mevcut katılımları
// etkilenmez. Zaten banlı kullanıcı için idempotenttir.
func (s *AdminService) BanUser(userID int64) (*models.User, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	if user.IsBanned {
		return user, nil
	}

	now := time.Now()
	user.IsBanned = true
	user.BannedAt = &now
	user.Touch()

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to ban user: %w", err)
	}

	s.logger.Printf("⚡ Kullanıcı banlandı: user=%d", userID)
	return user, nil
}

// UnbanUser, kullanıcının banını kaldırır. Banlı olmayan kullanıcı için
// idempotenttir.
func (s *AdminService) UnbanUser(userID int64) (*models.User, error) {
	user, err := s.loadUser(userID)
	if err != nil {
		return nil, err
	}

	if !user.IsBanned {
		return user, nil
	}

	user.IsBanned = false
	user.BannedAt = nil
	user.Touch()

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to unban user: %w", err)
	}

	s.logger.Printf("⚡ Kullanıcının banı kaldırıldı: user=%d", userID)
	return user, nil
}

// ListUsers, kullanıcıları sayfalı döndürür.
func (s *AdminService) ListUsers(page, perPage int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.users.GetAll(page, perPage)
}

// ListPayments, tüm ödeme kayıtlarını sayfalı döndürür (en yeniden eskiye).
func (s *AdminService) ListPayments(page, perPage int) ([]models.Payment, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.payments.GetAll(page, perPage)
}

// Dashboard, operasyon paneli için özet istatistikleri döndürür.
func (s *AdminService) Dashboard() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	statuses := []models.CampaignStatus{
		models.CampaignStatusPending,
		models.CampaignStatusActive,
		models.CampaignStatusSuccessful,
		models.CampaignStatusFailed,
		models.CampaignStatusCancelled,
	}

	campaignCounts := make(map[string]int)
	for _, status := range statuses {
		count, err := s.campaigns.CountAll(models.CampaignFilter{Status: status})
		if err != nil {
			return nil, fmt.Errorf("failed to count campaigns: %w", err)
		}
		campaignCounts[string(status)] = count
	}
	stats["campaigns"] = campaignCounts

	// Bekleyen iade job'ları
	pendingRefunds, err := s.jobQueue.Size(refundQueueName)
	if err != nil {
		s.logger.Printf("⚠️  İade kuyruğu okunamadı: %v", err)
		pendingRefunds = -1
	}
	stats["pending_refund_jobs"] = pendingRefunds

	return stats, nil
}

// loadUser, kullanıcıyı okur ve sql.ErrNoRows'u ErrNotFound'a çevirir.
func (s *AdminService) loadUser(userID int64) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
