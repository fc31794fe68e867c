package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/database"
)

type ParticipationRepository struct {
	db      *sql.DB
	grammar database.Grammar
}

func NewParticipationRepository(db *sql.DB) *ParticipationRepository {
	return &ParticipationRepository{
		db:      db,
		grammar: database.NewMySQLGrammar(),
	}
}

func (r *ParticipationRepository) Create(participation *models.Participation) (int64, error) {
	result, err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		ExecInsert(map[string]interface{}{
			"campaign_id":          participation.CampaignID,
			"user_id":              participation.UserID,
			"quantity":             participation.Quantity,
			"status":               participation.Status,
			"deposit_amount":       participation.DepositAmount,
			"deposit_paid":         participation.DepositPaid,
			"final_payment_amount": participation.FinalPaymentAmount,
			"final_payment_paid":   participation.FinalPaymentPaid,
			"voucher_code":         participation.VoucherCode,
			"joined_at":            participation.JoinedAt,
			"created_at":           participation.CreatedAt,
			"updated_at":           participation.UpdatedAt,
		})

	if err != nil {
		return 0, fmt.Errorf("failed to create participation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

func (r *ParticipationRepository) FindByID(id int64) (*models.Participation, error) {
	var participation models.Participation

	err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("id", "=", id).
		First(&participation)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find participation: %w", err)
	}

	return &participation, nil
}

// FindByUserAndCampaign, kullanıcının kampanyadaki en güncel katılım kaydını
// döndürür. Duplicate kontrolü bu kayıt üzerinden yapılır.
func (r *ParticipationRepository) FindByUserAndCampaign(userID, campaignID int64) (*models.Participation, error) {
	var participation models.Participation

	err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("user_id", "=", userID).
		Where("campaign_id", "=", campaignID).
		OrderBy("id", "DESC").
		First(&participation)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find participation: %w", err)
	}

	return &participation, nil
}

// GetByUserAndCampaign, kullanıcının kampanyadaki tüm katılım kayıtlarını
// ID sırasıyla döndürür.
func (r *ParticipationRepository) GetByUserAndCampaign(userID, campaignID int64) ([]models.Participation, error) {
	var participations []models.Participation

	err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("user_id", "=", userID).
		Where("campaign_id", "=", campaignID).
		OrderBy("id", "ASC").
		Get(&participations)

	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}

	return participations, nil
}

func (r *ParticipationRepository) GetByCampaign(campaignID int64) ([]models.Participation, error) {
	var participations []models.Participation

	err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("campaign_id", "=", campaignID).
		OrderBy("id", "ASC").
		Get(&participations)

	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}

	return participations, nil
}

func (r *ParticipationRepository) GetActiveByCampaign(campaignID int64) ([]models.Participation, error) {
	var participations []models.Participation

	err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("campaign_id", "=", campaignID).
		Where("status", "=", models.ParticipationStatusActive).
		OrderBy("id", "ASC").
		Get(&participations)

	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}

	return participations, nil
}

func (r *ParticipationRepository) GetByUser(userID int64) ([]models.Participation, error) {
	var participations []models.Participation

	err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("user_id", "=", userID).
		OrderBy("id", "DESC").
		Get(&participations)

	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}

	return participations, nil
}

func (r *ParticipationRepository) Update(participation *models.Participation) error {
	participation.UpdatedAt = time.Now()

	result, err := database.NewBuilder(r.db, r.grammar).
		Table("participations").
		Where("id", "=", participation.ID).
		ExecUpdate(map[string]interface{}{
			"status":             participation.Status,
			"deposit_paid":       participation.DepositPaid,
			"final_payment_paid": participation.FinalPaymentPaid,
			"voucher_code":       participation.VoucherCode,
			"updated_at":         participation.UpdatedAt,
		})

	if err != nil {
		return fmt.Errorf("failed to update participation: %w", err)
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
