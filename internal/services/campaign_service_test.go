package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/cache"
)

func newCampaignServiceFixture() (*CampaignService, *participationFixture) {
	f := newParticipationFixture()
	service := NewCampaignService(
		f.campaigns,
		f.ledger,
		f.manager,
		cache.NewMemoryCache(testLogger()),
		testLogger(),
	)
	return service, f
}

func validCampaignInput() CampaignInput {
	return CampaignInput{
		Title:           "Toplu Kahve Makinesi Alımı",
		Description:     "20 kişi olursak %40 indirim",
		Category:        "elektronik",
		RegularPrice:    1000,
		DiscountedPrice: 600,
		TargetCount:     20,
		Deadline:        time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}
}

func TestCampaignService_Create(t *testing.T) {
	service, _ := newCampaignServiceFixture()

	campaign, err := service.Create(context.Background(), 1, validCampaignInput())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if campaign.ID == 0 {
		t.Error("Expected campaign ID to be assigned")
	}
	if campaign.Status != models.CampaignStatusActive {
		t.Errorf("Expected active campaign, got: %s", campaign.Status)
	}
	if campaign.Version != 1 {
		t.Errorf("Expected version 1, got: %d", campaign.Version)
	}
	if campaign.CurrentCount != 0 {
		t.Errorf("Expected empty campaign, got count: %d", campaign.CurrentCount)
	}
	if campaign.RegularPrice != 1000 || campaign.DiscountedPrice != 600 {
		t.Errorf("Expected prices 1000/600, got: %.2f/%.2f", campaign.RegularPrice, campaign.DiscountedPrice)
	}
	if campaign.StartsAt.IsZero() {
		t.Error("Expected start date to default to now")
	}
}

// İndirimli fiyat normal fiyatı aşamaz ve depozito tutarının altına inemez.
func TestCampaignService_CreatePricingValidation(t *testing.T) {
	service, _ := newCampaignServiceFixture()
	ctx := context.Background()

	inverted := validCampaignInput()
	inverted.DiscountedPrice = 1200
	if _, err := service.Create(ctx, 1, inverted); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for discounted above regular, got: %v", err)
	}

	belowDeposit := validCampaignInput()
	belowDeposit.DiscountedPrice = 50 // depozito 100'ün altında
	if _, err := service.Create(ctx, 1, belowDeposit); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for discounted below deposit, got: %v", err)
	}
}

func TestCampaignService_CreateStartDate(t *testing.T) {
	service, _ := newCampaignServiceFixture()
	ctx := context.Background()

	explicit := validCampaignInput()
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	explicit.StartDate = start.Format(time.RFC3339)

	campaign, err := service.Create(ctx, 1, explicit)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !campaign.StartsAt.Equal(start) {
		t.Errorf("Expected start date %v, got: %v", start, campaign.StartsAt)
	}

	// Deadline başlangıçtan önce olamaz
	backwards := validCampaignInput()
	backwards.StartDate = time.Now().Add(96 * time.Hour).Format(time.RFC3339)
	if _, err := service.Create(ctx, 1, backwards); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for deadline before start, got: %v", err)
	}

	unparseable := validCampaignInput()
	unparseable.StartDate = "yarın"
	if _, err := service.Create(ctx, 1, unparseable); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for unparseable start date, got: %v", err)
	}
}

func TestCampaignService_CreateValidation(t *testing.T) {
	service, _ := newCampaignServiceFixture()
	ctx := context.Background()

	noTitle := validCampaignInput()
	noTitle.Title = ""
	if _, err := service.Create(ctx, 1, noTitle); err == nil {
		t.Error("Expected validation error for empty title")
	}

	lowTarget := validCampaignInput()
	lowTarget.TargetCount = 1
	if _, err := service.Create(ctx, 1, lowTarget); err == nil {
		t.Error("Expected validation error for target below 2")
	}

	pastDeadline := validCampaignInput()
	pastDeadline.Deadline = time.Now().Add(-time.Hour).Format(time.RFC3339)
	if _, err := service.Create(ctx, 1, pastDeadline); err == nil {
		t.Error("Expected validation error for past deadline")
	} else if !strings.Contains(err.Error(), "deadline") {
		t.Errorf("Expected deadline error, got: %v", err)
	}

	badDeadline := validCampaignInput()
	badDeadline.Deadline = "yarın"
	if _, err := service.Create(ctx, 1, badDeadline); err == nil {
		t.Error("Expected validation error for unparseable deadline")
	}
}

func TestCampaignService_GetAllFilters(t *testing.T) {
	service, f := newCampaignServiceFixture()

	active := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	failed := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	failed.Status = models.CampaignStatusFailed
	_ = f.campaigns.Update(failed)

	campaigns, total, err := service.GetAll(models.CampaignFilter{Status: models.CampaignStatusActive})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if total != 1 || len(campaigns) != 1 {
		t.Fatalf("Expected 1 active campaign, got: %d (total %d)", len(campaigns), total)
	}
	if campaigns[0].ID != active.ID {
		t.Errorf("Expected campaign %d, got: %d", active.ID, campaigns[0].ID)
	}
}

func TestCampaignService_UpdateAuthorization(t *testing.T) {
	service, f := newCampaignServiceFixture()
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour)) // CreatorID: 1

	ctx := context.Background()
	input := CampaignInput{Title: "Güncellenmiş Başlık"}

	// Yabancı kullanıcı güncelleyemez
	if _, err := service.Update(ctx, 42, models.RoleUser, campaign.ID, input); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got: %v", err)
	}

	// Sahip güncelleyebilir
	updated, err := service.Update(ctx, 1, models.RoleUser, campaign.ID, input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if updated.Title != "Güncellenmiş Başlık" {
		t.Errorf("Expected title update, got: %s", updated.Title)
	}

	// Admin de güncelleyebilir
	if _, err := service.Update(ctx, 42, models.RoleAdmin, campaign.ID, CampaignInput{Title: "Admin Başlığı"}); err != nil {
		t.Errorf("Expected admin update to succeed, got: %v", err)
	}
}

func TestCampaignService_UpdateTerminalRejected(t *testing.T) {
	service, f := newCampaignServiceFixture()
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	campaign.Status = models.CampaignStatusCancelled
	_ = f.campaigns.Update(campaign)

	if _, err := service.Update(context.Background(), 1, models.RoleUser, campaign.ID, CampaignInput{Title: "Yeni"}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("Expected ErrInvalidStateTransition, got: %v", err)
	}
}

func TestCampaignService_CancelRefundsParticipants(t *testing.T) {
	service, f := newCampaignServiceFixture()
	user := f.newUser("katilimci@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	if _, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	cancelled, err := service.Cancel(ctx, 1, models.RoleUser, campaign.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cancelled.Status != models.CampaignStatusCancelled {
		t.Errorf("Expected cancelled, got: %s", cancelled.Status)
	}
	if f.gw.RefundCount() != 1 {
		t.Errorf("Expected 1 refund, got: %d", f.gw.RefundCount())
	}
}

func TestCampaignService_Stats(t *testing.T) {
	service, f := newCampaignServiceFixture()
	user := f.newUser("katilimci@example.com")
	campaign := newTestCampaign(f.campaigns, 4, time.Now().Add(time.Hour))

	ctx := context.Background()
	if _, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	stats, err := service.Stats(campaign.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stats["current_count"] != 1 {
		t.Errorf("Expected current_count 1, got: %v", stats["current_count"])
	}
	if stats["fill_rate"] != 25.0 {
		t.Errorf("Expected fill_rate 25, got: %v", stats["fill_rate"])
	}
	if stats["deposit"] != 100.0 {
		t.Errorf("Expected deposit 100, got: %v", stats["deposit"])
	}
}

func TestCampaignService_GetByIDNotFound(t *testing.T) {
	service, _ := newCampaignServiceFixture()

	if _, err := service.GetByID(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}
