package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/internal/notifications"
)

func newAdminFixture() (*AdminService, *participationFixture) {
	f := newParticipationFixture()
	admin := NewAdminService(
		f.ledger,
		f.campaigns,
		f.users,
		f.payments,
		f.manager,
		f.queue,
		notifications.NewPublisher(),
		testLogger(),
	)
	return admin, f
}

func TestAdminService_ForceCancel(t *testing.T) {
	admin, f := newAdminFixture()
	user := f.newUser("katilimci@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	if _, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	cancelled, err := admin.ForceCancel(ctx, campaign.ID, "Şüpheli kampanya")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cancelled.Status != models.CampaignStatusCancelled {
		t.Errorf("Expected cancelled, got: %s", cancelled.Status)
	}

	if f.gw.RefundCount() != 1 {
		t.Errorf("Expected 1 refund, got: %d", f.gw.RefundCount())
	}

	participation, _ := f.participations.FindByUserAndCampaign(user.ID, campaign.ID)
	if participation.Status != models.ParticipationStatusRefunded {
		t.Errorf("Expected refunded participation, got: %s", participation.Status)
	}
}

func TestAdminService_ForceCancelTerminal(t *testing.T) {
	admin, f := newAdminFixture()
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	campaign.Status = models.CampaignStatusFailed
	_ = f.campaigns.Update(campaign)

	if _, err := admin.ForceCancel(context.Background(), campaign.ID, "test"); !errors.Is(err, ErrInvalidStateTransition) {
		t.Errorf("Expected ErrInvalidStateTransition, got: %v", err)
	}
}

func TestAdminService_BanUser(t *testing.T) {
	admin, f := newAdminFixture()
	user := f.newUser("banli@example.com")

	banned, err := admin.BanUser(user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !banned.IsBanned {
		t.Error("Expected user to be banned")
	}
	if banned.BannedAt == nil {
		t.Error("Expected BannedAt to be set")
	}

	// İdempotent: tekrar banlamak hata değildir
	again, err := admin.BanUser(user.ID)
	if err != nil {
		t.Fatalf("Expected idempotent ban, got: %v", err)
	}
	if !again.IsBanned {
		t.Error("Expected user to stay banned")
	}

	// Banlı kullanıcı yeni kampanyaya katılamaz
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	if _, err := f.manager.Join(context.Background(), user.ID, campaign.ID, 1, "pm_card"); !errors.Is(err, ErrUserBanned) {
		t.Errorf("Expected ErrUserBanned, got: %v", err)
	}
}

// Ban, mevcut katılımları etkilemez; kullanıcı hâlâ ayrılabilir.
func TestAdminService_BanKeepsExistingParticipation(t *testing.T) {
	admin, f := newAdminFixture()
	user := f.newUser("mevcut@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := admin.BanUser(user.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	current, _ := f.participations.FindByID(participation.ID)
	if current.Status != models.ParticipationStatusActive {
		t.Errorf("Expected existing participation to stay active, got: %s", current.Status)
	}

	if _, err := f.manager.Leave(ctx, user.ID, participation.ID); err != nil {
		t.Errorf("Expected banned user to still leave, got: %v", err)
	}
}

func TestAdminService_UnbanUser(t *testing.T) {
	admin, f := newAdminFixture()
	user := f.newUser("affedilen@example.com")

	if _, err := admin.BanUser(user.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	unbanned, err := admin.UnbanUser(user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if unbanned.IsBanned {
		t.Error("Expected user to be unbanned")
	}
	if unbanned.BannedAt != nil {
		t.Error("Expected BannedAt to be cleared")
	}

	// Tekrar katılabilir
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	if _, err := f.manager.Join(context.Background(), user.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Errorf("Expected join after unban, got: %v", err)
	}

	// İdempotent: banlı olmayan kullanıcı için hata üretmez
	if _, err := admin.UnbanUser(user.ID); err != nil {
		t.Errorf("Expected idempotent unban, got: %v", err)
	}
}

func TestAdminService_BanNotFound(t *testing.T) {
	admin, _ := newAdminFixture()

	if _, err := admin.BanUser(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestAdminService_Dashboard(t *testing.T) {
	admin, f := newAdminFixture()
	newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	failed := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	failed.Status = models.CampaignStatusFailed
	_ = f.campaigns.Update(failed)

	stats, err := admin.Dashboard()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	counts, ok := stats["campaigns"].(map[string]int)
	if !ok {
		t.Fatalf("Expected campaign counts map, got: %T", stats["campaigns"])
	}
	if counts["active"] != 1 {
		t.Errorf("Expected 1 active campaign, got: %d", counts["active"])
	}
	if counts["failed"] != 1 {
		t.Errorf("Expected 1 failed campaign, got: %d", counts["failed"])
	}
}

func TestAdminService_ListPayments(t *testing.T) {
	admin, f := newAdminFixture()
	user := f.newUser("katilimci@example.com")
	campaign := newTestCampaign(f.campaigns, 10, time.Now().Add(time.Hour))

	ctx := context.Background()
	if _, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	payments, err := admin.ListPayments(1, 20)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("Expected 1 payment, got: %d", len(payments))
	}
	if payments[0].Kind != models.PaymentKindDeposit {
		t.Errorf("Expected deposit payment, got: %s", payments[0].Kind)
	}

	// Aralık dışı sayfa boş döner
	empty, err := admin.ListPayments(5, 20)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty page, got: %d", len(empty))
	}
}
