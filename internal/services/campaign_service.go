// -----------------------------------------------------------------------------
// Campaign Service
// -----------------------------------------------------------------------------
// Kampanya CRUD ve sorgu işlemlerini yönetir. Slot ve durum değişiklikleri
// CampaignLedger üzerinden yapılır; bu servis sadece içerik alanlarını
// (başlık, açıklama vb.) doğrudan günceller.
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
	"github.com/biyonik/groupbuy-api/pkg/cache"
	"github.com/biyonik/groupbuy-api/pkg/validation"
	"github.com/biyonik/groupbuy-api/pkg/validation/types"
)

// statsCacheTTL, kampanya istatistik cache'inin ömrü.
const statsCacheTTL = 30 * time.Second

// CampaignInput, kampanya oluşturma/güncelleme girdisini temsil eder.
type CampaignInput struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	ImageURL        string  `json:"image_url"`
	RegularPrice    float64 `json:"regular_price"`
	DiscountedPrice float64 `json:"discounted_price"`
	TargetCount     int     `json:"target_count"`
	StartDate       string  `json:"start_date"` // RFC3339; boşsa şimdi
	Deadline        string  `json:"deadline"`   // RFC3339
}

// CampaignService, kampanya işlemlerini yöneten servistir.
type CampaignService struct {
	campaigns      CampaignQueryStore
	ledger         *CampaignLedger
	participations *ParticipationManager
	cache          cache.Cache
	logger         *log.Logger
}

// NewCampaignService, yeni bir CampaignService oluşturur.
func NewCampaignService(
	campaigns CampaignQueryStore,
	ledger *CampaignLedger,
	participations *ParticipationManager,
	cacheStore cache.Cache,
	logger *log.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns:      campaigns,
		ledger:         ledger,
		participations: participations,
		cache:          cacheStore,
		logger:         logger,
	}
}

// Create, yeni bir kampanya oluşturur. Kampanya doğrudan katılıma açık
// (active) olarak başlar.
func (s *CampaignService) Create(ctx context.Context, creatorID int64, input CampaignInput) (*models.Campaign, error) {
	// 1. Input validation
	schema := validation.Make().Shape(map[string]validation.Type{
		"title":            types.String().Required().Min(3).Max(150).Label("Başlık"),
		"description":      types.String().Max(5000).Label("Açıklama"),
		"category":         types.String().Required().Min(2).Max(50).Label("Kategori"),
		"regular_price":    types.Number().Required().Min(1).Label("Normal fiyat"),
		"discounted_price": types.Number().Required().Min(1).Label("İndirimli fiyat"),
		"target_count":     types.Number().Required().Min(2).Label("Hedef katılımcı"),
		"deadline":         types.String().Required().Label("Son tarih"),
	}).CrossValidate(func(data map[string]any) error {
		regular, _ := data["regular_price"].(float64)
		discounted, _ := data["discounted_price"].(float64)
		if discounted > regular {
			return validation.NewFieldError("discounted_price", "İndirimli fiyat normal fiyatı aşamaz")
		}
		if discounted < regular*models.DepositRate {
			return validation.NewFieldError("discounted_price", "İndirimli fiyat depozito tutarının altında olamaz")
		}
		return nil
	})

	result := schema.Validate(map[string]any{
		"title":            input.Title,
		"description":      input.Description,
		"category":         input.Category,
		"regular_price":    input.RegularPrice,
		"discounted_price": input.DiscountedPrice,
		"target_count":     float64(input.TargetCount),
		"deadline":         input.Deadline,
	})

	if result.HasErrors() {
		for field, errs := range result.Errors() {
			return nil, fmt.Errorf("%w: %s: %s", ErrValidation, field, errs[0])
		}
	}

	// 2. Tarih parse ve kontrol
	deadline, err := time.Parse(time.RFC3339, input.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: deadline: geçerli bir tarih olmalıdır (RFC3339)", ErrValidation)
	}
	if !deadline.After(time.Now()) {
		return nil, fmt.Errorf("%w: deadline: gelecekte bir tarih olmalıdır", ErrValidation)
	}

	startsAt := time.Now()
	if input.StartDate != "" {
		startsAt, err = time.Parse(time.RFC3339, input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date: geçerli bir tarih olmalıdır (RFC3339)", ErrValidation)
		}
	}
	if !deadline.After(startsAt) {
		return nil, fmt.Errorf("%w: deadline: başlangıç tarihinden sonra olmalıdır", ErrValidation)
	}

	// 3. Kampanyayı oluştur
	campaign := &models.Campaign{
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		ImageURL:        input.ImageURL,
		RegularPrice:    input.RegularPrice,
		DiscountedPrice: input.DiscountedPrice,
		TargetCount:     input.TargetCount,
		StartsAt:        startsAt,
		Deadline:        deadline,
		Status:          models.CampaignStatusActive,
		CreatorID:       creatorID,
		Version:         1,
	}
	campaign.Initialize()

	id, err := s.campaigns.Create(campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	campaign.ID = id

	s.logger.Printf("✅ Kampanya oluşturuldu: id=%d creator=%d target=%d", id, creatorID, campaign.TargetCount)

	return campaign, nil
}

// GetByID, kampanyayı döndürür.
func (s *CampaignService) GetByID(campaignID int64) (*models.Campaign, error) {
	campaign, err := s.campaigns.FindByID(campaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return campaign, nil
}

// GetAll, filtrelere göre kampanyaları sayfalı döndürür.
func (s *CampaignService) GetAll(filter models.CampaignFilter) ([]models.Campaign, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	campaigns, err := s.campaigns.GetAll(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	total, err := s.campaigns.CountAll(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return campaigns, total, nil
}

// GetMyCampaigns, kullanıcının oluşturduğu kampanyaları döndürür.
func (s *CampaignService) GetMyCampaigns(creatorID int64) ([]models.Campaign, error) {
	campaigns, err := s.campaigns.GetByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// Update, kampanyanın içerik alanlarını günceller. Slot sayısı, durum ve
// fiyat bu yoldan değiştirilemez. Sadece sahibi veya admin güncelleyebilir.
func (s *CampaignService) Update(ctx context.Context, requesterID int64, requesterRole string, campaignID int64, input CampaignInput) (*models.Campaign, error) {
	campaign, err := s.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}
	if campaign.IsTerminal() {
		return nil, ErrInvalidStateTransition
	}

	if input.Title != "" {
		campaign.Title = input.Title
	}
	if input.Description != "" {
		campaign.Description = input.Description
	}
	if input.Category != "" {
		campaign.Category = input.Category
	}
	if input.ImageURL != "" {
		campaign.ImageURL = input.ImageURL
	}
	campaign.Touch()

	if err := s.campaigns.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	s.invalidateStats(campaignID)

	return campaign, nil
}

// Cancel, kampanyayı iptal eder ve iadeleri başlatır. Sadece sahibi veya
// admin iptal edebilir.
func (s *CampaignService) Cancel(ctx context.Context, requesterID int64, requesterRole string, campaignID int64) (*models.Campaign, error) {
	campaign, err := s.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}

	cancelled, err := s.ledger.ForceCancel(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	refunded, err := s.participations.RefundCampaignParticipants(ctx, campaignID, "Kampanya iptal edildi")
	if err != nil {
		s.logger.Printf("❌ İptal sonrası iadeler başlatılamadı [campaign=%d]: %v", campaignID, err)
	} else if refunded > 0 {
		s.logger.Printf("🔄 İptal iadeleri başlatıldı: campaign=%d count=%d", campaignID, refunded)
	}

	s.invalidateStats(campaignID)

	return cancelled, nil
}

// Finalize, kampanyayı sonuçlandırır. Failed sonuçta iadeler başlatılır.
// Sadece sahibi veya admin tetikleyebilir; sweep aynı yolu kullanır.
func (s *CampaignService) Finalize(ctx context.Context, requesterID int64, requesterRole string, campaignID int64) (*models.Campaign, error) {
	campaign, err := s.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}

	wasTerminal := campaign.IsTerminal()

	finalized, err := s.ledger.Finalize(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if !wasTerminal && finalized.Status == models.CampaignStatusFailed {
		if _, err := s.participations.RefundCampaignParticipants(ctx, campaignID, "Kampanya hedefe ulaşamadı"); err != nil {
			s.logger.Printf("❌ Finalize sonrası iadeler başlatılamadı [campaign=%d]: %v", campaignID, err)
		}
	}

	s.invalidateStats(campaignID)

	return finalized, nil
}

// Activate, pending durumdaki kampanyayı katılıma açar.
func (s *CampaignService) Activate(ctx context.Context, requesterID int64, requesterRole string, campaignID int64) (*models.Campaign, error) {
	campaign, err := s.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}

	return s.ledger.Activate(ctx, campaignID)
}

// Stats, kampanya istatistiklerini döndürür. Sonuç kısa süreli cache'lenir.
func (s *CampaignService) Stats(campaignID int64) (map[string]interface{}, error) {
	cacheKey := fmt.Sprintf("campaign:stats:%d", campaignID)

	cached, err := s.cache.Remember(cacheKey, statsCacheTTL, func() (interface{}, error) {
		campaign, err := s.GetByID(campaignID)
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"campaign_id":      campaign.ID,
			"status":           string(campaign.Status),
			"current_count":    campaign.CurrentCount,
			"target_count":     campaign.TargetCount,
			"fill_rate":        campaign.GetFillRate(),
			"regular_price":    campaign.RegularPrice,
			"discounted_price": campaign.DiscountedPrice,
			"deposit":          campaign.DepositFor(1),
			"final_payment":    campaign.FinalPaymentFor(1),
			"deadline":         campaign.Deadline.Format(time.RFC3339),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	stats, ok := cached.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("beklenmeyen cache içeriği: %T", cached)
	}
	return stats, nil
}

// invalidateStats, kampanyanın istatistik cache'ini temizler.
func (s *CampaignService) invalidateStats(campaignID int64) {
	if err := s.cache.Delete(fmt.Sprintf("campaign:stats:%d", campaignID)); err != nil {
		s.logger.Printf("⚠️  Stats cache temizlenemedi [campaign=%d]: %v", campaignID, err)
	}
}
