// -----------------------------------------------------------------------------
// Service Store Interfaces
// -----------------------------------------------------------------------------
// Servis katmanının persistence ihtiyaçlarını tanımlayan interface'ler.
// MySQL implementasyonları repositories paketindedir; testler in-memory
// implementasyonlar kullanır. Bulunamayan kayıtlar için sql.ErrNoRows
// dönülür; servisler bunu ErrNotFound'a çevirir.
// -----------------------------------------------------------------------------

package services

import (
	"github.com/biyonik/groupbuy-api/internal/models"
)

// CampaignQueryStore, kampanya listeleme ve yazma işlemlerini tanımlar.
// Slot/durum değişiklikleri buradan değil, CampaignLedger üzerinden yapılır.
type CampaignQueryStore interface {
	CampaignStore

	// GetAll, filtrelere göre kampanyaları sayfalı döndürür.
	GetAll(filter models.CampaignFilter) ([]models.Campaign, error)

	// CountAll, filtreye uyan toplam kampanya sayısını döndürür.
	CountAll(filter models.CampaignFilter) (int, error)

	// GetByCreator, bir kullanıcının oluşturduğu kampanyaları döndürür.
	GetByCreator(creatorID int64) ([]models.Campaign, error)

	// GetExpiredUnresolved, deadline'ı geçmiş ama hala active durumda olan
	// kampanyaları döndürür. Sweep bu listeyi sonuçlandırır.
	GetExpiredUnresolved(limit int) ([]models.Campaign, error)

	// Create, yeni bir kampanya kaydeder ve ID'sini döndürür.
	Create(campaign *models.Campaign) (int64, error)

	// Update, slot/durum dışındaki alanları günceller (başlık, açıklama vb.).
	Update(campaign *models.Campaign) error

	// SoftDelete, kampanyayı soft delete yapar.
	SoftDelete(id int64) error
}

// ParticipationStore, katılım kayıtlarına erişimi tanımlar.
type ParticipationStore interface {
	FindByID(id int64) (*models.Participation, error)

	// FindByUserAndCampaign, kullanıcının kampanyadaki katılımını döndürür.
	// Katılım yoksa sql.ErrNoRows döner.
	FindByUserAndCampaign(userID, campaignID int64) (*models.Participation, error)

	// GetByUserAndCampaign, kullanıcının kampanyadaki TÜM katılım
	// kayıtlarını ID sırasıyla döndürür. Eşzamanlı join'lerin insert
	// sonrası duplicate recheck'i bu listeyle yapılır.
	GetByUserAndCampaign(userID, campaignID int64) ([]models.Participation, error)

	// GetByCampaign, kampanyanın tüm katılımlarını döndürür.
	GetByCampaign(campaignID int64) ([]models.Participation, error)

	// GetActiveByCampaign, kampanyanın aktif katılımlarını döndürür.
	GetActiveByCampaign(campaignID int64) ([]models.Participation, error)

	// GetByUser, kullanıcının tüm katılımlarını döndürür.
	GetByUser(userID int64) ([]models.Participation, error)

	Create(participation *models.Participation) (int64, error)
	Update(participation *models.Participation) error
}

// PaymentStore, ödeme kayıtlarına erişimi tanımlar.
type PaymentStore interface {
	FindByID(id int64) (*models.Payment, error)
	GetAll(page, perPage int) ([]models.Payment, error)
	GetByUser(userID int64) ([]models.Payment, error)
	GetByCampaign(campaignID int64) ([]models.Payment, error)
	GetByParticipation(participationID int64) ([]models.Payment, error)
	Create(payment *models.Payment) (int64, error)
	Update(payment *models.Payment) error
}

// UserStore, kullanıcı kayıtlarına erişimi tanımlar.
type UserStore interface {
	FindByID(id int64) (*models.User, error)

	// FindByEmail, email ile kullanıcı arar. Yoksa sql.ErrNoRows döner.
	FindByEmail(email string) (*models.User, error)

	GetAll(page, perPage int) ([]models.User, error)
	Create(user *models.User) (int64, error)
	Update(user *models.User) error
}
