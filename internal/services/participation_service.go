// -----------------------------------------------------------------------------
// Participation Manager Service
// -----------------------------------------------------------------------------
// Katılım yaşam döngüsünü yönetir: katılma (depozito tahsilatı), ayrılma
// (depozito iadesi) ve kalan ödemenin tahsili.
//
// Ödeme sözleşmesi:
// Slot rezervasyonu version-CAS ile yapılır; gateway çağrısı ASLA bu yazma
// yolunun içinde değildir. Depozito tahsilatı başarısız olursa rezerve
// edilen slot ReleaseSlot ile telafi edilir. Tüm gateway çağrıları
// deterministik idempotency key taşır; retry çift tahsilat üretmez.
// -----------------------------------------------------------------------------

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/biyonik/groupbuy-api/internal/gateway"
	"github.com/biyonik/groupbuy-api/internal/jobs"
	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/internal/notifications"
	"github.com/biyonik/groupbuy-api/internal/vouchers"
	"github.com/biyonik/groupbuy-api/pkg/queue"
	"github.com/biyonik/groupbuy-api/pkg/validation"
	"github.com/biyonik/groupbuy-api/pkg/validation/types"
)

// refundQueueName, iade job'larının gönderildiği kuyruk.
const refundQueueName = "refunds"

// ParticipationManager, katılım işlemlerini yöneten servistir.
type ParticipationManager struct {
	ledger         *CampaignLedger
	campaigns      CampaignStore
	participations ParticipationStore
	payments       PaymentStore
	users          UserStore
	gw             gateway.PaymentGateway
	jobQueue       queue.Queue
	notifier       *notifications.Publisher
	voucherFactory *vouchers.Factory
	logger         *log.Logger
}

// NewParticipationManager, yeni bir ParticipationManager oluşturur.
func NewParticipationManager(
	ledger *CampaignLedger,
	campaigns CampaignStore,
	participations ParticipationStore,
	payments PaymentStore,
	users UserStore,
	gw gateway.PaymentGateway,
	jobQueue queue.Queue,
	notifier *notifications.Publisher,
	voucherFactory *vouchers.Factory,
	logger *log.Logger,
) *ParticipationManager {
	return &ParticipationManager{
		ledger:         ledger,
		campaigns:      campaigns,
		participations: participations,
		payments:       payments,
		users:          users,
		gw:             gw,
		jobQueue:       jobQueue,
		notifier:       notifier,
		voucherFactory: voucherFactory,
		logger:         logger,
	}
}

// Join, kullanıcıyı kampanyaya katar. Quantity, katılımın tüketeceği slot
// sayısıdır; depozito ve kalan ödeme bu sayıyla ölçeklenir.
//
// Akış:
//  1. Input validation
//  2. Kullanıcı kontrolü (ban durumu)
//  3. Duplicate katılım kontrolü
//  4. Slot rezervasyonu (CAS yazma yolu)
//  5. Katılım kaydı + insert sonrası duplicate recheck
//  6. Depozito tahsilatı (yazma yolunun DIŞINDA)
//  7. Başarısız tahsilatta slot iadesi (compensation)
func (s *ParticipationManager) Join(ctx context.Context, userID, campaignID int64, quantity int, paymentMethodID string) (*models.Participation, error) {
	// 1. Input validation
	schema := validation.Make().Shape(map[string]validation.Type{
		"campaign_id":       types.Number().Required().Min(1).Label("Kampanya"),
		"quantity":          types.Number().Required().Min(1).Integer().Label("Adet"),
		"payment_method_id": types.String().Required().Label("Ödeme yöntemi"),
	})

	result := schema.Validate(map[string]any{
		"campaign_id":       float64(campaignID),
		"quantity":          float64(quantity),
		"payment_method_id": paymentMethodID,
	})

	if result.HasErrors() {
		for field, errs := range result.Errors() {
			return nil, fmt.Errorf("%w: %s: %s", ErrValidation, field, errs[0])
		}
	}

	// 2. Kullanıcı kontrolü
	user, err := s.users.FindByID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	// 3. Duplicate katılım kontrolü
	existing, err := s.participations.FindByUserAndCampaign(userID, campaignID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing participation: %w", err)
	}
	if existing != nil && !existing.IsSettled() {
		return nil, ErrDuplicateParticipation
	}
	if existing != nil && existing.Status == models.ParticipationStatusCompleted {
		return nil, ErrDuplicateParticipation
	}

	// 4. Slot rezervasyonu
	campaign, err := s.ledger.ReserveSlot(ctx, campaignID, quantity)
	if err != nil {
		return nil, err
	}

	// 5. Katılım ve ödeme kaydını oluştur
	participation := &models.Participation{
		CampaignID:         campaignID,
		UserID:             userID,
		Quantity:           quantity,
		Status:             models.ParticipationStatusPending,
		DepositAmount:      campaign.DepositFor(quantity),
		FinalPaymentAmount: campaign.FinalPaymentFor(quantity),
		JoinedAt:           time.Now(),
	}
	participation.Initialize()

	participationID, err := s.participations.Create(participation)
	if err != nil {
		// Katılım yazılamadı, rezerve edilen slotu geri ver
		s.compensateSlot(ctx, campaignID, quantity)
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}
	participation.ID = participationID

	// Insert sonrası recheck: adım 3'teki kontrol ile insert arasında aynı
	// kullanıcının eşzamanlı bir Join'i araya girmiş olabilir. Daha küçük
	// ID'li nihai olmayan bir kayıt varsa bu istek kaybeder ve geri alınır.
	if err := s.verifySoleParticipation(ctx, participation); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ParticipationID: participationID,
		CampaignID:      campaignID,
		UserID:          userID,
		Amount:          participation.DepositAmount,
		Kind:            models.PaymentKindDeposit,
		Status:          models.PaymentStatusPending,
		IdempotencyKey:  fmt.Sprintf("deposit-%d", participationID),
	}
	payment.Initialize()

	paymentID, err := s.payments.Create(payment)
	if err != nil {
		s.compensateSlot(ctx, campaignID, quantity)
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}
	payment.ID = paymentID

	// 6. Depozito tahsilatı (CAS yazma yolunun dışında)
	chargeResult, chargeErr := s.gw.Charge(ctx, gateway.ChargeRequest{
		UserID:          userID,
		Amount:          participation.DepositAmount,
		Currency:        "TRY",
		PaymentMethodID: paymentMethodID,
		IdempotencyKey:  payment.IdempotencyKey,
		Description:     fmt.Sprintf("Depozito: %s", campaign.Title),
	})

	if chargeErr != nil {
		// Compensation: ödeme başarısız, slot iade edilir
		payment.Status = models.PaymentStatusFailed
		payment.FailureReason = chargeErr.Error()
		payment.Touch()
		if err := s.payments.Update(payment); err != nil {
			s.logger.Printf("⚠️  Başarısız ödeme kaydı güncellenemedi [%d]: %v", payment.ID, err)
		}

		participation.Status = models.ParticipationStatusCancelled
		participation.Touch()
		if err := s.participations.Update(participation); err != nil {
			s.logger.Printf("⚠️  Katılım kaydı güncellenemedi [%d]: %v", participation.ID, err)
		}

		s.compensateSlot(ctx, campaignID, quantity)

		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypePaymentFailed,
			Data: &notifications.PaymentNotice{
				UserID:        userID,
				UserEmail:     user.Email,
				CampaignTitle: campaign.Title,
				Amount:        participation.DepositAmount,
				ErrorMessage:  chargeErr.Error(),
			},
		})

		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, chargeErr)
	}

	// Tahsilat başarılı: kayıtları kesinleştir
	payment.Status = models.PaymentStatusSucceeded
	payment.TransactionID = chargeResult.TransactionID
	payment.Touch()
	if err := s.payments.Update(payment); err != nil {
		s.logger.Printf("⚠️  Ödeme kaydı güncellenemedi [%d]: %v", payment.ID, err)
	}

	participation.Status = models.ParticipationStatusActive
	participation.DepositPaid = true
	participation.Touch()
	if err := s.participations.Update(participation); err != nil {
		return nil, fmt.Errorf("failed to activate participation: %w", err)
	}

	s.logger.Printf("✅ Katılım tamamlandı: user=%d campaign=%d deposit=%.2f", userID, campaignID, participation.DepositAmount)

	s.notifier.Notify(&notifications.EventData{
		Type: notifications.EventTypeParticipationJoined,
		Data: &notifications.ParticipationNotice{
			UserID:        userID,
			UserEmail:     user.Email,
			UserName:      user.Name,
			CampaignID:    campaignID,
			CampaignTitle: campaign.Title,
			DepositAmount: participation.DepositAmount,
			CurrentCount:  campaign.CurrentCount,
			TargetCount:   campaign.TargetCount,
		},
	})

	if campaign.Status == models.CampaignStatusSuccessful {
		s.logger.Printf("📢 Kampanya hedefe ulaştı: campaign=%d", campaignID)
		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypeCampaignSuccessful,
			Data: &notifications.CampaignNotice{
				CampaignID:    campaign.ID,
				CampaignTitle: campaign.Title,
				CurrentCount:  campaign.CurrentCount,
				TargetCount:   campaign.TargetCount,
			},
		})
	}

	return participation, nil
}

// Leave, katılımcıyı kampanyadan çıkarır ve depozitosunu iade eder.
//
// Slot iadesi, successful bir kampanyayı hedefin altına düşürürse kampanya
// tekrar active olur. İade best-effort yapılır; gateway'e ulaşılamazsa
// kuyruğa devredilir, ayrılma işlemi geri alınmaz.
func (s *ParticipationManager) Leave(ctx context.Context, userID, participationID int64) (*models.Participation, error) {
	participation, err := s.loadParticipation(participationID)
	if err != nil {
		return nil, err
	}
	if participation.UserID != userID {
		return nil, ErrUnauthorized
	}
	if !participation.CanLeave() {
		return nil, ErrInvalidStateTransition
	}

	campaign, err := s.campaigns.FindByID(participation.CampaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	// Failed/cancelled kampanyaların iadeleri sweep tarafından yapılır
	if campaign.Status == models.CampaignStatusFailed || campaign.Status == models.CampaignStatusCancelled {
		return nil, ErrInvalidStateTransition
	}

	if _, err := s.ledger.ReleaseSlot(ctx, participation.CampaignID, participation.Quantity); err != nil {
		return nil, err
	}

	// Ayrılan katılım refunded olarak işaretlenir; iade kaydı aşağıda açılır
	participation.Status = models.ParticipationStatusRefunded
	participation.Touch()
	if err := s.participations.Update(participation); err != nil {
		return nil, fmt.Errorf("failed to mark participation refunded: %w", err)
	}

	if participation.DepositPaid {
		s.refundDeposit(ctx, participation, "Kampanyadan ayrılma")
	}

	user, err := s.users.FindByID(userID)
	if err == nil {
		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypeParticipationLeft,
			Data: &notifications.ParticipationNotice{
				UserID:        userID,
				UserEmail:     user.Email,
				UserName:      user.Name,
				CampaignID:    campaign.ID,
				CampaignTitle: campaign.Title,
				DepositAmount: participation.DepositAmount,
			},
		})
	}

	s.logger.Printf("🗑️  Katılım iptal edildi: user=%d participation=%d", userID, participationID)

	return participation, nil
}

// PayFinal, başarılı kampanyada kalan tutarı tahsil eder ve teslimat
// voucher'ı üretir.
func (s *ParticipationManager) PayFinal(ctx context.Context, userID, participationID int64, paymentMethodID string) (*models.Participation, error) {
	participation, err := s.loadParticipation(participationID)
	if err != nil {
		return nil, err
	}
	if participation.UserID != userID {
		return nil, ErrUnauthorized
	}
	if participation.FinalPaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if !participation.CanPayFinal() {
		return nil, ErrInvalidStateTransition
	}

	campaign, err := s.campaigns.FindByID(participation.CampaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.Status != models.CampaignStatusSuccessful {
		return nil, ErrCampaignNotSuccessful
	}

	payment := &models.Payment{
		ParticipationID: participationID,
		CampaignID:      campaign.ID,
		UserID:          userID,
		Amount:          participation.FinalPaymentAmount,
		Kind:            models.PaymentKindFinal,
		Status:          models.PaymentStatusPending,
		IdempotencyKey:  fmt.Sprintf("final-%d", participationID),
	}
	payment.Initialize()

	paymentID, err := s.payments.Create(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}
	payment.ID = paymentID

	chargeResult, chargeErr := s.gw.Charge(ctx, gateway.ChargeRequest{
		UserID:          userID,
		Amount:          participation.FinalPaymentAmount,
		Currency:        "TRY",
		PaymentMethodID: paymentMethodID,
		IdempotencyKey:  payment.IdempotencyKey,
		Description:     fmt.Sprintf("Kalan ödeme: %s", campaign.Title),
	})

	if chargeErr != nil {
		payment.Status = models.PaymentStatusFailed
		payment.FailureReason = chargeErr.Error()
		payment.Touch()
		if err := s.payments.Update(payment); err != nil {
			s.logger.Printf("⚠️  Başarısız ödeme kaydı güncellenemedi [%d]: %v", payment.ID, err)
		}

		// Katılım aktif kalır; kullanıcı tekrar deneyebilir. Slot iadesi yok.
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, chargeErr)
	}

	payment.Status = models.PaymentStatusSucceeded
	payment.TransactionID = chargeResult.TransactionID
	payment.Touch()
	if err := s.payments.Update(payment); err != nil {
		s.logger.Printf("⚠️  Ödeme kaydı güncellenemedi [%d]: %v", payment.ID, err)
	}

	voucherCode, err := s.generateVoucherCode()
	if err != nil {
		// Tahsilat gerçekleşti ama katılım tamamlanamadı; participation aktif
		// kalır ve kullanıcı tekrar dener. Charge idempotency key'i aynı
		// olduğu için retry çift tahsilat üretmez.
		s.logger.Printf("❌ Voucher üretilemedi [%d]: %v", participationID, err)
		return nil, fmt.Errorf("failed to generate voucher code: %w", err)
	}

	participation.Status = models.ParticipationStatusCompleted
	participation.FinalPaymentPaid = true
	participation.VoucherCode = voucherCode
	participation.Touch()
	if err := s.participations.Update(participation); err != nil {
		return nil, fmt.Errorf("failed to complete participation: %w", err)
	}

	s.logger.Printf("✅ Kalan ödeme tamamlandı: user=%d participation=%d amount=%.2f", userID, participationID, payment.Amount)

	user, err := s.users.FindByID(userID)
	if err == nil {
		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypeFinalPaymentDone,
			Data: &notifications.PaymentNotice{
				UserID:        userID,
				UserEmail:     user.Email,
				CampaignTitle: campaign.Title,
				Amount:        payment.Amount,
				TransactionID: payment.TransactionID,
				VoucherCode:   voucherCode,
			},
		})
	}

	return participation, nil
}

// GetByID, katılımı döndürür. Sadece sahibi veya admin erişebilir.
func (s *ParticipationManager) GetByID(requesterID int64, requesterRole string, participationID int64) (*models.Participation, error) {
	participation, err := s.loadParticipation(participationID)
	if err != nil {
		return nil, err
	}
	if participation.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}
	return participation, nil
}

// GetMyParticipations, kullanıcının tüm katılımlarını döndürür.
func (s *ParticipationManager) GetMyParticipations(userID int64) ([]models.Participation, error) {
	participations, err := s.participations.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participations, nil
}

// GetMyPayments, kullanıcının ödeme geçmişini döndürür.
func (s *ParticipationManager) GetMyPayments(userID int64) ([]models.Payment, error) {
	payments, err := s.payments.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// GetPaymentByID, tek bir ödeme kaydını döndürür. Sadece ödemenin sahibi
// veya admin erişebilir.
func (s *ParticipationManager) GetPaymentByID(requesterID int64, requesterRole string, paymentID int64) (*models.Payment, error) {
	payment, err := s.payments.FindByID(paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if payment.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}
	return payment, nil
}

// GetCampaignPayments, kampanyanın tüm ödeme kayıtlarını döndürür.
// Sadece kampanya sahibi veya admin erişebilir.
func (s *ParticipationManager) GetCampaignPayments(requesterID int64, requesterRole string, campaignID int64) ([]models.Payment, error) {
	campaign, err := s.campaigns.FindByID(campaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.CreatorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}

	payments, err := s.payments.GetByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// GetCampaignParticipants, kampanyanın katılımcılarını döndürür.
// Sadece kampanya sahibi veya admin erişebilir.
func (s *ParticipationManager) GetCampaignParticipants(requesterID int64, requesterRole string, campaignID int64) ([]models.Participation, error) {
	campaign, err := s.campaigns.FindByID(campaignID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.CreatorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, ErrUnauthorized
	}

	participants, err := s.participations.GetByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// VoucherImage, tamamlanmış katılımın teslimat QR görüntüsünü döndürür.
func (s *ParticipationManager) VoucherImage(requesterID int64, requesterRole string, participationID int64) ([]byte, error) {
	participation, err := s.GetByID(requesterID, requesterRole, participationID)
	if err != nil {
		return nil, err
	}
	if participation.Status != models.ParticipationStatusCompleted || participation.VoucherCode == "" {
		return nil, ErrInvalidStateTransition
	}
	return s.voucherFactory.GenerateImage(participation)
}

// RefundCampaignParticipants, failed veya cancelled bir kampanyanın depozito
// ödemiş katılımcılarına iade yapar. Hatalar izole edilir; bir katılımcının
// iadesi başarısız olsa bile diğerleri denenir.
func (s *ParticipationManager) RefundCampaignParticipants(ctx context.Context, campaignID int64, reason string) (int, error) {
	participations, err := s.participations.GetActiveByCampaign(campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to list participations: %w", err)
	}

	refunded := 0
	for i := range participations {
		participation := &participations[i]
		if !participation.DepositPaid {
			continue
		}

		participation.Status = models.ParticipationStatusRefunded
		participation.Touch()
		if err := s.participations.Update(participation); err != nil {
			s.logger.Printf("⚠️  Katılım güncellenemedi [%d]: %v", participation.ID, err)
			continue
		}

		s.refundDeposit(ctx, participation, reason)
		refunded++
	}

	return refunded, nil
}

// refundDeposit, depozitoyu best-effort iade eder. Gateway hatasında iade
// kuyruğa devredilir; çağıran akış bloke edilmez.
func (s *ParticipationManager) refundDeposit(ctx context.Context, participation *models.Participation, reason string) {
	depositTxn := s.findDepositTransaction(participation.ID)

	refund := &models.Payment{
		ParticipationID: participation.ID,
		CampaignID:      participation.CampaignID,
		UserID:          participation.UserID,
		Amount:          participation.DepositAmount,
		Kind:            models.PaymentKindRefund,
		Status:          models.PaymentStatusPending,
		IdempotencyKey:  fmt.Sprintf("refund-%d", participation.ID),
		TransactionID:   depositTxn,
	}
	refund.Initialize()

	refundID, err := s.payments.Create(refund)
	if err != nil {
		s.logger.Printf("❌ İade kaydı oluşturulamadı [participation=%d]: %v", participation.ID, err)
		return
	}
	refund.ID = refundID

	result, err := s.gw.Refund(ctx, gateway.RefundRequest{
		UserID:         participation.UserID,
		Amount:         participation.DepositAmount,
		TransactionID:  depositTxn,
		IdempotencyKey: refund.IdempotencyKey,
		Reason:         reason,
	})

	if err != nil {
		// İade kuyruğa devredilir, akış bloke edilmez. Job bağımlılıkları
		// bağlı olarak push edilir; sync driver job'ı hemen çalıştırır,
		// redis driver deserialize sonrası registry factory'sinden bağlar.
		s.logger.Printf("🔄 İade kuyruğa devredildi [participation=%d]: %v", participation.ID, err)

		job := jobs.NewRefundDepositJob(s.gw, s.payments)
		job.PaymentID = refund.ID
		job.UserID = participation.UserID
		job.Amount = participation.DepositAmount
		job.TransactionID = depositTxn
		job.IdempotencyKey = refund.IdempotencyKey
		job.Reason = reason

		if pushErr := s.jobQueue.Push(job, refundQueueName); pushErr != nil {
			s.logger.Printf("❌ İade job'ı kuyruğa eklenemedi [participation=%d]: %v", participation.ID, pushErr)
		}
		return
	}

	refund.Status = models.PaymentStatusSucceeded
	refund.TransactionID = result.RefundID
	refund.Touch()
	if err := s.payments.Update(refund); err != nil {
		s.logger.Printf("⚠️  İade kaydı güncellenemedi [%d]: %v", refund.ID, err)
	}

	user, err := s.users.FindByID(participation.UserID)
	if err == nil {
		s.notifier.Notify(&notifications.EventData{
			Type: notifications.EventTypeRefundIssued,
			Data: &notifications.RefundNotice{
				UserID:    participation.UserID,
				UserEmail: user.Email,
				Amount:    participation.DepositAmount,
				Reason:    reason,
			},
		})
	}
}

// generateVoucherCode, voucher kodu üretimini birkaç kez dener. Tamamlanan
// katılım her zaman bir voucher koduyla kaydedilir; üretim tamamen
// başarısızsa hata çağırana döner.
func (s *ParticipationManager) generateVoucherCode() (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		code, err := s.voucherFactory.GenerateCode()
		if err == nil {
			return code, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// findDepositTransaction, katılımın başarılı depozito işleminin transaction
// ID'sini bulur.
func (s *ParticipationManager) findDepositTransaction(participationID int64) string {
	payments, err := s.payments.GetByParticipation(participationID)
	if err != nil {
		s.logger.Printf("⚠️  Ödeme geçmişi okunamadı [participation=%d]: %v", participationID, err)
		return ""
	}
	for _, p := range payments {
		if p.Kind == models.PaymentKindDeposit && p.IsSucceeded() {
			return p.TransactionID
		}
	}
	return ""
}

// compensateSlot, rezerve edilmiş slotları geri verir ve hatayı loglar.
func (s *ParticipationManager) compensateSlot(ctx context.Context, campaignID int64, quantity int) {
	if _, err := s.ledger.ReleaseSlot(ctx, campaignID, quantity); err != nil {
		s.logger.Printf("❌ Slot iadesi başarısız [campaign=%d]: %v", campaignID, err)
	}
}

// verifySoleParticipation, insert edilen katılımın kullanıcı+kampanya için
// tek nihai-olmayan kayıt olduğunu doğrular. Aynı kullanıcının eşzamanlı iki
// Join'i ön kontrolü aynı anda geçebilir; bu durumda iki pending satır
// oluşur. Daha küçük ID'li satır kazanır; kaybeden satır iptal edilir,
// rezerve ettiği slotlar geri verilir ve ErrDuplicateParticipation döner.
func (s *ParticipationManager) verifySoleParticipation(ctx context.Context, participation *models.Participation) error {
	rows, err := s.participations.GetByUserAndCampaign(participation.UserID, participation.CampaignID)
	if err != nil {
		s.logger.Printf("⚠️  Duplicate recheck yapılamadı [participation=%d]: %v", participation.ID, err)
		return nil
	}

	for i := range rows {
		other := &rows[i]
		if other.ID == participation.ID || other.IsSettled() {
			continue
		}
		if other.ID < participation.ID {
			participation.Status = models.ParticipationStatusCancelled
			participation.Touch()
			if err := s.participations.Update(participation); err != nil {
				s.logger.Printf("⚠️  Kaybeden katılım iptal edilemedi [%d]: %v", participation.ID, err)
			}
			s.compensateSlot(ctx, participation.CampaignID, participation.Quantity)
			return ErrDuplicateParticipation
		}
	}

	return nil
}

// loadParticipation, katılımı okur ve sql.ErrNoRows'u ErrNotFound'a çevirir.
func (s *ParticipationManager) loadParticipation(participationID int64) (*models.Participation, error) {
	participation, err := s.participations.FindByID(participationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load participation: %w", err)
	}
	return participation, nil
}
