package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/biyonik/groupbuy-api/internal/gateway"
	"github.com/biyonik/groupbuy-api/internal/jobs"
	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/internal/notifications"
	"github.com/biyonik/groupbuy-api/internal/vouchers"
)

type participationFixture struct {
	manager        *ParticipationManager
	ledger         *CampaignLedger
	campaigns      *memCampaignStore
	participations *memParticipationStore
	payments       *memPaymentStore
	users          *memUserStore
	gw             *gateway.SandboxGateway
	queue          *recordingQueue
}

func newParticipationFixture() *participationFixture {
	return newParticipationFixtureWithVouchers(vouchers.NewFactory())
}

func newParticipationFixtureWithVouchers(voucherFactory *vouchers.Factory) *participationFixture {
	campaigns := newMemCampaignStore()
	participations := newMemParticipationStore()
	payments := newMemPaymentStore()
	users := newMemUserStore()
	gw := gateway.NewSandboxGateway()
	q := newRecordingQueue()
	ledger := NewCampaignLedger(campaigns)

	manager := NewParticipationManager(
		ledger,
		campaigns,
		participations,
		payments,
		users,
		gw,
		q,
		notifications.NewPublisher(),
		voucherFactory,
		testLogger(),
	)

	return &participationFixture{
		manager:        manager,
		ledger:         ledger,
		campaigns:      campaigns,
		participations: participations,
		payments:       payments,
		users:          users,
		gw:             gw,
		queue:          q,
	}
}

func (f *participationFixture) newUser(email string) *models.User {
	user := &models.User{
		Name:  "Test Kullanıcı",
		Email: email,
		Role:  models.RoleUser,
	}
	user.Initialize()
	_, _ = f.users.Create(user)
	return user
}

func TestParticipationManager_Join(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("katilimci@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	participation, err := f.manager.Join(context.Background(), user.ID, campaign.ID, 1, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if participation.Status != models.ParticipationStatusActive {
		t.Errorf("Expected active participation, got: %s", participation.Status)
	}
	if !participation.DepositPaid {
		t.Error("Expected deposit to be paid")
	}
	if participation.Quantity != 1 {
		t.Errorf("Expected quantity 1, got: %d", participation.Quantity)
	}
	if participation.DepositAmount != 100 { // 1000 * 0.10
		t.Errorf("Expected deposit 100, got: %.2f", participation.DepositAmount)
	}
	if participation.FinalPaymentAmount != 800 { // 900 - 100 depozito
		t.Errorf("Expected final payment 800, got: %.2f", participation.FinalPaymentAmount)
	}

	updated, _ := f.campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 1 {
		t.Errorf("Expected campaign count 1, got: %d", updated.CurrentCount)
	}

	payments, _ := f.payments.GetByParticipation(participation.ID)
	if len(payments) != 1 || payments[0].Status != models.PaymentStatusSucceeded {
		t.Errorf("Expected one succeeded deposit payment, got: %+v", payments)
	}
}

func TestParticipationManager_JoinBannedUser(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("banli@example.com")
	user.IsBanned = true
	_ = f.users.Update(user)
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	if _, err := f.manager.Join(context.Background(), user.ID, campaign.ID, 1, "pm_card"); !errors.Is(err, ErrUserBanned) {
		t.Errorf("Expected ErrUserBanned, got: %v", err)
	}

	updated, _ := f.campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 0 {
		t.Errorf("Expected no slot consumed, got: %d", updated.CurrentCount)
	}
}

func TestParticipationManager_JoinDuplicate(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("tekrar@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	if _, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); !errors.Is(err, ErrDuplicateParticipation) {
		t.Errorf("Expected ErrDuplicateParticipation, got: %v", err)
	}

	updated, _ := f.campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 1 {
		t.Errorf("Expected count to stay 1, got: %d", updated.CurrentCount)
	}
}

// Depozito tahsilatı reddedilirse rezerve edilen slot geri verilir.
func TestParticipationManager_JoinDeclinedReleasesSlot(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("reddedilen@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))
	f.gw.DeclineNext(1)

	_, err := f.manager.Join(context.Background(), user.ID, campaign.ID, 1, "pm_card")
	if !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("Expected ErrPaymentFailed, got: %v", err)
	}

	updated, _ := f.campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 0 {
		t.Errorf("Expected slot to be released, got count: %d", updated.CurrentCount)
	}

	participation, err := f.participations.FindByUserAndCampaign(user.ID, campaign.ID)
	if err != nil {
		t.Fatalf("Expected participation record, got: %v", err)
	}
	if participation.Status != models.ParticipationStatusCancelled {
		t.Errorf("Expected cancelled participation, got: %s", participation.Status)
	}

	payments, _ := f.payments.GetByParticipation(participation.ID)
	if len(payments) != 1 || payments[0].Status != models.PaymentStatusFailed {
		t.Errorf("Expected one failed payment record, got: %+v", payments)
	}

	// Slot boşaldı: başka bir kullanıcı katılabilir
	other := f.newUser("diger@example.com")
	if _, err := f.manager.Join(context.Background(), other.ID, campaign.ID, 1, "pm_card"); err != nil {
		t.Errorf("Expected join to succeed after release, got: %v", err)
	}
}

// N kullanıcı K slotlu kampanyaya aynı anda katılırsa tam K katılım oluşur
// ve tam K depozito tahsil edilir.
func TestParticipationManager_ConcurrentJoins(t *testing.T) {
	f := newParticipationFixture()

	const target = 5
	const attempts = 20
	campaign := newTestCampaign(f.campaigns, target, time.Now().Add(time.Hour))

	users := make([]*models.User, attempts)
	for i := range users {
		users[i] = f.newUser(string(rune('a'+i)) + "@example.com")
	}

	var joined atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for {
				_, err := f.manager.Join(context.Background(), users[idx].ID, campaign.ID, 1, "pm_card")
				if err == nil {
					joined.Add(1)
					return
				}
				if errors.Is(err, ErrConflict) {
					continue
				}
				return
			}
		}(i)
	}
	wg.Wait()

	if joined.Load() != target {
		t.Errorf("Expected exactly %d joins, got: %d", target, joined.Load())
	}
	if f.gw.ChargeCount() != target {
		t.Errorf("Expected exactly %d charges, got: %d", target, f.gw.ChargeCount())
	}

	final, _ := f.campaigns.FindByID(campaign.ID)
	if final.CurrentCount != target {
		t.Errorf("Expected count %d, got: %d", target, final.CurrentCount)
	}
	if final.Status != models.CampaignStatusSuccessful {
		t.Errorf("Expected successful campaign, got: %s", final.Status)
	}
}

func TestParticipationManager_Leave(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("ayrilan@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, err := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	left, err := f.manager.Leave(ctx, user.ID, participation.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if left.Status != models.ParticipationStatusRefunded {
		t.Errorf("Expected refunded, got: %s", left.Status)
	}

	updated, _ := f.campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 0 {
		t.Errorf("Expected slot released, got count: %d", updated.CurrentCount)
	}

	if f.gw.RefundCount() != 1 {
		t.Errorf("Expected 1 refund, got: %d", f.gw.RefundCount())
	}
}

func TestParticipationManager_LeaveOtherUsers(t *testing.T) {
	f := newParticipationFixture()
	owner := f.newUser("sahip@example.com")
	intruder := f.newUser("baskasi@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, _ := f.manager.Join(ctx, owner.ID, campaign.ID, 1, "pm_card")

	if _, err := f.manager.Leave(ctx, intruder.ID, participation.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got: %v", err)
	}
}

// Gateway'e ulaşılamıyorsa ayrılma yine başarılıdır; iade kuyruğa devredilir.
func TestParticipationManager_LeaveQueuesRefundOnNetworkError(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("kuyruk@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, _ := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card")

	f.gw.FailNetwork(1)

	left, err := f.manager.Leave(ctx, user.ID, participation.ID)
	if err != nil {
		t.Fatalf("Expected leave to succeed, got: %v", err)
	}
	if left.Status != models.ParticipationStatusRefunded {
		t.Errorf("Expected refunded, got: %s", left.Status)
	}

	if len(f.queue.PushedJobs()) != 1 {
		t.Errorf("Expected 1 queued refund job, got: %d", len(f.queue.PushedJobs()))
	}
}

// Successful kampanyadan ayrılma kampanyayı tekrar active yapar.
func TestParticipationManager_LeaveRevertsSuccessful(t *testing.T) {
	f := newParticipationFixture()
	first := f.newUser("ilk@example.com")
	second := f.newUser("ikinci@example.com")
	campaign := newTestCampaign(f.campaigns, 2, time.Now().Add(time.Hour))

	ctx := context.Background()
	p1, _ := f.manager.Join(ctx, first.ID, campaign.ID, 1, "pm_card")
	_, _ = f.manager.Join(ctx, second.ID, campaign.ID, 1, "pm_card")

	full, _ := f.campaigns.FindByID(campaign.ID)
	if full.Status != models.CampaignStatusSuccessful {
		t.Fatalf("Expected successful campaign, got: %s", full.Status)
	}

	if _, err := f.manager.Leave(ctx, first.ID, p1.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	reverted, _ := f.campaigns.FindByID(campaign.ID)
	if reverted.Status != models.CampaignStatusActive {
		t.Errorf("Expected campaign to revert to active, got: %s", reverted.Status)
	}
	if reverted.CurrentCount != 1 {
		t.Errorf("Expected count 1, got: %d", reverted.CurrentCount)
	}
}

func TestParticipationManager_PayFinal(t *testing.T) {
	f := newParticipationFixture()
	first := f.newUser("ilk@example.com")
	second := f.newUser("ikinci@example.com")
	campaign := newTestCampaign(f.campaigns, 2, time.Now().Add(time.Hour))

	ctx := context.Background()
	p1, _ := f.manager.Join(ctx, first.ID, campaign.ID, 1, "pm_card")
	_, _ = f.manager.Join(ctx, second.ID, campaign.ID, 1, "pm_card")

	completed, err := f.manager.PayFinal(ctx, first.ID, p1.ID, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if completed.Status != models.ParticipationStatusCompleted {
		t.Errorf("Expected completed, got: %s", completed.Status)
	}
	if !completed.FinalPaymentPaid {
		t.Error("Expected final payment flag to be set")
	}
	if completed.VoucherCode == "" {
		t.Error("Expected voucher code to be generated")
	}

	// Tekrar ödeme denemesi reddedilir
	if _, err := f.manager.PayFinal(ctx, first.ID, p1.ID, "pm_card"); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("Expected ErrAlreadyPaid, got: %v", err)
	}
}

func TestParticipationManager_PayFinalRequiresSuccessfulCampaign(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("erken@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, _ := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card")

	if _, err := f.manager.PayFinal(ctx, user.ID, participation.ID, "pm_card"); !errors.Is(err, ErrCampaignNotSuccessful) {
		t.Errorf("Expected ErrCampaignNotSuccessful, got: %v", err)
	}
}

// Kalan ödeme reddedilirse katılım aktif kalır, slot kaybedilmez.
func TestParticipationManager_PayFinalDeclined(t *testing.T) {
	f := newParticipationFixture()
	first := f.newUser("ilk@example.com")
	second := f.newUser("ikinci@example.com")
	campaign := newTestCampaign(f.campaigns, 2, time.Now().Add(time.Hour))

	ctx := context.Background()
	p1, _ := f.manager.Join(ctx, first.ID, campaign.ID, 1, "pm_card")
	_, _ = f.manager.Join(ctx, second.ID, campaign.ID, 1, "pm_card")

	f.gw.DeclineNext(1)

	if _, err := f.manager.PayFinal(ctx, first.ID, p1.ID, "pm_card"); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("Expected ErrPaymentFailed, got: %v", err)
	}

	participation, _ := f.participations.FindByID(p1.ID)
	if participation.Status != models.ParticipationStatusActive {
		t.Errorf("Expected participation to stay active, got: %s", participation.Status)
	}

	campaign2, _ := f.campaigns.FindByID(campaign.ID)
	if campaign2.CurrentCount != 2 {
		t.Errorf("Expected count unchanged, got: %d", campaign2.CurrentCount)
	}
}

func TestParticipationManager_RefundCampaignParticipants(t *testing.T) {
	f := newParticipationFixture()
	first := f.newUser("ilk@example.com")
	second := f.newUser("ikinci@example.com")
	campaign := newTestCampaign(f.campaigns, 10, time.Now().Add(time.Hour))

	ctx := context.Background()
	_, _ = f.manager.Join(ctx, first.ID, campaign.ID, 1, "pm_card")
	_, _ = f.manager.Join(ctx, second.ID, campaign.ID, 1, "pm_card")

	refunded, err := f.manager.RefundCampaignParticipants(ctx, campaign.ID, "Kampanya hedefe ulaşamadı")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if refunded != 2 {
		t.Errorf("Expected 2 refunds, got: %d", refunded)
	}
	if f.gw.RefundCount() != 2 {
		t.Errorf("Expected 2 gateway refunds, got: %d", f.gw.RefundCount())
	}

	participations, _ := f.participations.GetByCampaign(campaign.ID)
	for _, p := range participations {
		if p.Status != models.ParticipationStatusRefunded {
			t.Errorf("Expected refunded status, got: %s", p.Status)
		}
	}
}

func TestParticipationManager_GetPaymentByID(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("katilimci@example.com")
	stranger := f.newUser("yabanci@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	participation, err := f.manager.Join(context.Background(), user.ID, campaign.ID, 1, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	payments, _ := f.payments.GetByParticipation(participation.ID)
	if len(payments) != 1 {
		t.Fatalf("Expected 1 payment, got: %d", len(payments))
	}
	paymentID := payments[0].ID

	// Sahip erişebilir
	payment, err := f.manager.GetPaymentByID(user.ID, models.RoleUser, paymentID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if payment.Kind != models.PaymentKindDeposit {
		t.Errorf("Expected deposit payment, got: %s", payment.Kind)
	}

	// Başkası erişemez
	if _, err := f.manager.GetPaymentByID(stranger.ID, models.RoleUser, paymentID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got: %v", err)
	}

	// Admin erişebilir
	if _, err := f.manager.GetPaymentByID(stranger.ID, models.RoleAdmin, paymentID); err != nil {
		t.Errorf("Expected no error for admin, got: %v", err)
	}

	// Olmayan ödeme
	if _, err := f.manager.GetPaymentByID(user.ID, models.RoleUser, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestParticipationManager_GetCampaignPayments(t *testing.T) {
	f := newParticipationFixture()
	first := f.newUser("ilk@example.com")
	second := f.newUser("ikinci@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour)) // CreatorID: 1

	ctx := context.Background()
	_, _ = f.manager.Join(ctx, first.ID, campaign.ID, 1, "pm_card")
	_, _ = f.manager.Join(ctx, second.ID, campaign.ID, 1, "pm_card")

	// Kampanya sahibi tüm ödemeleri görür
	payments, err := f.manager.GetCampaignPayments(1, models.RoleUser, campaign.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(payments) != 2 {
		t.Errorf("Expected 2 payments, got: %d", len(payments))
	}

	// Katılımcı bile olsa sahibi olmayan göremez
	if _, err := f.manager.GetCampaignPayments(first.ID, models.RoleUser, campaign.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got: %v", err)
	}
}

// Birden fazla slotlu katılım: depozito ve kalan ödeme adetle ölçeklenir,
// ayrılınca slotların tamamı geri verilir.
func TestParticipationManager_JoinWithQuantity(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("toptan@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, err := f.manager.Join(ctx, user.ID, campaign.ID, 3, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if participation.Quantity != 3 {
		t.Errorf("Expected quantity 3, got: %d", participation.Quantity)
	}
	if participation.DepositAmount != 300 { // 1000 * 0.10 * 3
		t.Errorf("Expected deposit 300, got: %.2f", participation.DepositAmount)
	}
	if participation.FinalPaymentAmount != 2400 { // 900*3 - 300 depozito
		t.Errorf("Expected final payment 2400, got: %.2f", participation.FinalPaymentAmount)
	}

	updated, _ := f.campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 3 {
		t.Errorf("Expected campaign count 3, got: %d", updated.CurrentCount)
	}

	// Kalan 2 slot varken 3 adetlik talep bütün olarak reddedilir
	other := f.newUser("sigmaz@example.com")
	if _, err := f.manager.Join(ctx, other.ID, campaign.ID, 3, "pm_card"); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got: %v", err)
	}

	// Ayrılınca üç slotun tamamı geri döner
	if _, err := f.manager.Leave(ctx, user.ID, participation.ID); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	released, _ := f.campaigns.FindByID(campaign.ID)
	if released.CurrentCount != 0 {
		t.Errorf("Expected count 0 after leave, got: %d", released.CurrentCount)
	}
}

func TestParticipationManager_JoinRejectsInvalidQuantity(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("sifir@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	for _, qty := range []int{0, -2} {
		if _, err := f.manager.Join(context.Background(), user.ID, campaign.ID, qty, "pm_card"); !errors.Is(err, ErrValidation) {
			t.Errorf("quantity %d: expected ErrValidation, got: %v", qty, err)
		}
	}
}

// blindPrecheckStore, join öncesi duplicate kontrolünü her zaman boş gösterir.
// Aynı kullanıcının eşzamanlı iki join'inde ön kontrolün ikisini de geçirdiği
// pencereyi deterministik olarak üretir.
type blindPrecheckStore struct {
	*memParticipationStore
}

func (s *blindPrecheckStore) FindByUserAndCampaign(userID, campaignID int64) (*models.Participation, error) {
	return nil, sql.ErrNoRows
}

// Ön kontrolü aynı anda geçen ikinci join, insert sonrası recheck'te yakalanır:
// küçük ID'li kayıt kazanır, kaybeden iptal edilir ve slotu geri verilir.
func TestParticipationManager_JoinRecheckCancelsConcurrentDuplicate(t *testing.T) {
	campaigns := newMemCampaignStore()
	participations := &blindPrecheckStore{newMemParticipationStore()}
	payments := newMemPaymentStore()
	users := newMemUserStore()
	gw := gateway.NewSandboxGateway()
	ledger := NewCampaignLedger(campaigns)

	manager := NewParticipationManager(
		ledger,
		campaigns,
		participations,
		payments,
		users,
		gw,
		newRecordingQueue(),
		notifications.NewPublisher(),
		vouchers.NewFactory(),
		testLogger(),
	)

	user := &models.User{Name: "Test Kullanıcı", Email: "yaris@example.com", Role: models.RoleUser}
	user.Initialize()
	_, _ = users.Create(user)
	campaign := newTestCampaign(campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	first, err := manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card"); !errors.Is(err, ErrDuplicateParticipation) {
		t.Fatalf("Expected ErrDuplicateParticipation, got: %v", err)
	}

	updated, _ := campaigns.FindByID(campaign.ID)
	if updated.CurrentCount != 1 {
		t.Errorf("Expected count 1 after losing join rolled back, got: %d", updated.CurrentCount)
	}

	rows, _ := participations.GetByUserAndCampaign(user.ID, campaign.ID)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 participation rows, got: %d", len(rows))
	}
	if rows[0].ID != first.ID || rows[0].Status != models.ParticipationStatusActive {
		t.Errorf("Expected first row to stay active, got: id=%d status=%s", rows[0].ID, rows[0].Status)
	}
	if rows[1].Status != models.ParticipationStatusCancelled {
		t.Errorf("Expected losing row cancelled, got: %s", rows[1].Status)
	}
}

// Kuyruğa devredilen iade job'ı bağımlılıklarıyla push edilir: sync driver
// job'ı hemen çalıştırdığında iade gerçekten tamamlanabilmelidir.
func TestParticipationManager_QueuedRefundJobCarriesDependencies(t *testing.T) {
	f := newParticipationFixture()
	user := f.newUser("bagimlilik@example.com")
	campaign := newTestCampaign(f.campaigns, 5, time.Now().Add(time.Hour))

	ctx := context.Background()
	participation, _ := f.manager.Join(ctx, user.ID, campaign.ID, 1, "pm_card")

	f.gw.FailNetwork(1)
	if _, err := f.manager.Leave(ctx, user.ID, participation.ID); err != nil {
		t.Fatalf("Expected leave to succeed, got: %v", err)
	}

	pushed := f.queue.PushedJobs()
	if len(pushed) != 1 {
		t.Fatalf("Expected 1 queued job, got: %d", len(pushed))
	}
	job, ok := pushed[0].(*jobs.RefundDepositJob)
	if !ok {
		t.Fatalf("Expected *jobs.RefundDepositJob, got: %T", pushed[0])
	}
	if job.Gateway == nil || job.Payments == nil {
		t.Fatal("Expected job dependencies to be bound at push time")
	}

	// Ağ düzeldiğinde job olduğu gibi çalışabilmeli
	if err := job.Handle(); err != nil {
		t.Fatalf("Expected queued job to complete, got: %v", err)
	}

	refund, err := f.payments.FindByID(job.PaymentID)
	if err != nil {
		t.Fatalf("Expected refund payment record, got: %v", err)
	}
	if refund.Status != models.PaymentStatusSucceeded {
		t.Errorf("Expected refund succeeded after job run, got: %s", refund.Status)
	}
}

// brokenEntropy, voucher kodu üretimini başarısız kılan entropi kaynağıdır.
type brokenEntropy struct{}

func (brokenEntropy) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("entropy kaynağı kapalı")
}

// Voucher üretilemezse katılım tamamlanmış sayılmaz: aktif kalır ve kullanıcı
// aynı idempotency key ile tekrar deneyebilir.
func TestParticipationManager_PayFinalVoucherFailureKeepsActive(t *testing.T) {
	f := newParticipationFixtureWithVouchers(vouchers.NewFactoryWithRandom(brokenEntropy{}))
	first := f.newUser("ilk@example.com")
	second := f.newUser("ikinci@example.com")
	campaign := newTestCampaign(f.campaigns, 2, time.Now().Add(time.Hour))

	ctx := context.Background()
	p1, _ := f.manager.Join(ctx, first.ID, campaign.ID, 1, "pm_card")
	_, _ = f.manager.Join(ctx, second.ID, campaign.ID, 1, "pm_card")

	if _, err := f.manager.PayFinal(ctx, first.ID, p1.ID, "pm_card"); err == nil {
		t.Fatal("Expected error when voucher generation fails")
	}

	participation, _ := f.participations.FindByID(p1.ID)
	if participation.Status != models.ParticipationStatusActive {
		t.Errorf("Expected participation to stay active, got: %s", participation.Status)
	}
	if participation.FinalPaymentPaid {
		t.Error("Expected final payment flag to stay unset")
	}
	if participation.VoucherCode != "" {
		t.Errorf("Expected empty voucher code, got: %s", participation.VoucherCode)
	}
}
