package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/database"
)

type PaymentRepository struct {
	db      *sql.DB
	grammar database.Grammar
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{
		db:      db,
		grammar: database.NewMySQLGrammar(),
	}
}

func (r *PaymentRepository) Create(payment *models.Payment) (int64, error) {
	result, err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		ExecInsert(map[string]interface{}{
			"participation_id": payment.ParticipationID,
			"campaign_id":      payment.CampaignID,
			"user_id":          payment.UserID,
			"amount":           payment.Amount,
			"kind":             payment.Kind,
			"status":           payment.Status,
			"idempotency_key":  payment.IdempotencyKey,
			"transaction_id":   payment.TransactionID,
			"failure_reason":   payment.FailureReason,
			"created_at":       payment.CreatedAt,
			"updated_at":       payment.UpdatedAt,
		})

	if err != nil {
		return 0, fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

func (r *PaymentRepository) FindByID(id int64) (*models.Payment, error) {
	var payment models.Payment

	err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		Where("id", "=", id).
		First(&payment)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	return &payment, nil
}

func (r *PaymentRepository) GetAll(page, perPage int) ([]models.Payment, error) {
	var payments []models.Payment

	err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		OrderBy("id", "DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Get(&payments)

	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) GetByUser(userID int64) ([]models.Payment, error) {
	var payments []models.Payment

	err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		Where("user_id", "=", userID).
		OrderBy("id", "DESC").
		Get(&payments)

	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) GetByCampaign(campaignID int64) ([]models.Payment, error) {
	var payments []models.Payment

	err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		Where("campaign_id", "=", campaignID).
		OrderBy("id", "ASC").
		Get(&payments)

	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) GetByParticipation(participationID int64) ([]models.Payment, error) {
	var payments []models.Payment

	err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		Where("participation_id", "=", participationID).
		OrderBy("id", "ASC").
		Get(&payments)

	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}

	return payments, nil
}

func (r *PaymentRepository) Update(payment *models.Payment) error {
	payment.UpdatedAt = time.Now()

	result, err := database.NewBuilder(r.db, r.grammar).
		Table("payments").
		Where("id", "=", payment.ID).
		ExecUpdate(map[string]interface{}{
			"status":         payment.Status,
			"transaction_id": payment.TransactionID,
			"failure_reason": payment.FailureReason,
			"updated_at":     payment.UpdatedAt,
		})

	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
