package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/database"
)

type CampaignRepository struct {
	db      *sql.DB
	grammar database.Grammar
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{
		db:      db,
		grammar: database.NewMySQLGrammar(),
	}
}

func (r *CampaignRepository) Create(campaign *models.Campaign) (int64, error) {
	result, err := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		ExecInsert(map[string]interface{}{
			"title":            campaign.Title,
			"description":      campaign.Description,
			"category":         campaign.Category,
			"image_url":        campaign.ImageURL,
			"regular_price":    campaign.RegularPrice,
			"discounted_price": campaign.DiscountedPrice,
			"target_count":     campaign.TargetCount,
			"current_count":    campaign.CurrentCount,
			"starts_at":        campaign.StartsAt,
			"deadline":         campaign.Deadline,
			"status":           campaign.Status,
			"creator_id":       campaign.CreatorID,
			"version":          campaign.Version,
			"created_at":       campaign.CreatedAt,
			"updated_at":       campaign.UpdatedAt,
		})

	if err != nil {
		return 0, fmt.Errorf("failed to create campaign: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// FindByID, kampanyayı okur. Kayıt yoksa sql.ErrNoRows döner; çeviriyi
// servis katmanı yapar.
func (r *CampaignRepository) FindByID(id int64) (*models.Campaign, error) {
	var campaign models.Campaign

	err := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		Where("id", "=", id).
		WhereNull("deleted_at").
		First(&campaign)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	return &campaign, nil
}

// UpdateCAS, version koşullu tek UPDATE ile sayaç ve durum alanlarını yazar.
// Okunan version ile DB'deki version eşleşmezse hiçbir satır etkilenmez ve
// false döner; çağıran taraf tekrar okuyup yeniden dener.
func (r *CampaignRepository) UpdateCAS(campaign *models.Campaign) (bool, error) {
	query := `
		UPDATE campaigns
		SET current_count = ?, status = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ? AND deleted_at IS NULL
	`

	now := time.Now()
	result, err := r.db.Exec(query,
		campaign.CurrentCount, campaign.Status, now,
		campaign.ID, campaign.Version,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	campaign.Version++
	campaign.UpdatedAt = now
	return true, nil
}

// Update, içerik alanlarını yazar. Sayaç ve durum UpdateCAS üzerinden değişir.
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	campaign.UpdatedAt = time.Now()

	result, err := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		Where("id", "=", campaign.ID).
		WhereNull("deleted_at").
		ExecUpdate(map[string]interface{}{
			"title":       campaign.Title,
			"description": campaign.Description,
			"category":    campaign.Category,
			"image_url":   campaign.ImageURL,
			"updated_at":  campaign.UpdatedAt,
		})

	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
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

func (r *CampaignRepository) SoftDelete(id int64) error {
	result, err := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		Where("id", "=", id).
		WhereNull("deleted_at").
		ExecUpdate(map[string]interface{}{
			"deleted_at": time.Now(),
		})

	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
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

func (r *CampaignRepository) GetAll(filter models.CampaignFilter) ([]models.Campaign, error) {
	qb := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		WhereNull("deleted_at")

	applyCampaignFilter(qb, filter)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var campaigns []models.Campaign
	err := qb.
		OrderBy("created_at", "DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Get(&campaigns)

	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) CountAll(filter models.CampaignFilter) (int, error) {
	query := "SELECT COUNT(*) FROM campaigns WHERE deleted_at IS NULL"
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	return count, nil
}

func (r *CampaignRepository) GetByCreator(creatorID int64) ([]models.Campaign, error) {
	var campaigns []models.Campaign

	err := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		Where("creator_id", "=", creatorID).
		WhereNull("deleted_at").
		OrderBy("created_at", "DESC").
		Get(&campaigns)

	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}

	return campaigns, nil
}

// GetExpiredUnresolved, deadline'ı geçmiş ama hâlâ active olan kampanyaları
// döndürür. Sweep scheduler bu listeyi sonuçlandırır.
func (r *CampaignRepository) GetExpiredUnresolved(limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign

	err := database.NewBuilder(r.db, r.grammar).
		Table("campaigns").
		Where("status", "=", models.CampaignStatusActive).
		Where("deadline", "<", time.Now()).
		WhereNull("deleted_at").
		OrderBy("deadline", "ASC").
		Limit(limit).
		Get(&campaigns)

	if err != nil {
		return nil, fmt.Errorf("failed to query expired campaigns: %w", err)
	}

	return campaigns, nil
}

// applyCampaignFilter, liste sorgusuna opsiyonel filtreleri ekler.
func applyCampaignFilter(qb *database.QueryBuilder, filter models.CampaignFilter) {
	if filter.Status != "" {
		qb.Where("status", "=", filter.Status)
	}
	if filter.Category != "" {
		qb.Where("category", "=", filter.Category)
	}
	if filter.Search != "" {
		qb.Where("title", "LIKE", "%"+filter.Search+"%")
	}
}
