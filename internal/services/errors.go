// -----------------------------------------------------------------------------
// Service Errors
// -----------------------------------------------------------------------------
// Servis katmanının döndürdüğü sentinel error'lar. Controller'lar errors.Is
// ile bu hataları HTTP status kodlarına çevirir. Mesajlar kullanıcıya
// gösterilecek şekilde yazılmıştır.
// -----------------------------------------------------------------------------

package services

import "errors"

var (
	// ErrValidation, girdi doğrulamasının başarısız olduğunu belirtir (422).
	// Alan ve mesaj detayı wrap edilerek taşınır.
	ErrValidation = errors.New("doğrulama hatası")

	// ErrNotFound, istenen kaydın bulunamadığını belirtir (404).
	ErrNotFound = errors.New("kayıt bulunamadı")

	// ErrUnauthorized, işlemin bu kullanıcı için yasak olduğunu belirtir (403).
	ErrUnauthorized = errors.New("bu işlem için yetkiniz yok")

	// ErrCampaignNotActive, kampanyanın katılıma kapalı olduğunu belirtir (409).
	ErrCampaignNotActive = errors.New("kampanya katılıma açık değil")

	// ErrCapacityExceeded, kampanyanın dolu olduğunu belirtir (409).
	ErrCapacityExceeded = errors.New("kampanya kapasitesi dolu")

	// ErrDuplicateParticipation, kullanıcının aynı kampanyaya ikinci kez
	// katılmaya çalıştığını belirtir (409).
	ErrDuplicateParticipation = errors.New("bu kampanyaya zaten katıldınız")

	// ErrInvalidStateTransition, geçersiz bir durum geçişi denendiğini
	// belirtir (409).
	ErrInvalidStateTransition = errors.New("geçersiz durum geçişi")

	// ErrCampaignNotSuccessful, kalan ödemenin sadece başarılı kampanyalarda
	// yapılabileceğini belirtir (409).
	ErrCampaignNotSuccessful = errors.New("kampanya henüz başarıya ulaşmadı")

	// ErrAlreadyPaid, kalan ödemenin zaten yapıldığını belirtir (409).
	ErrAlreadyPaid = errors.New("kalan ödeme zaten yapılmış")

	// ErrPaymentFailed, ödeme sağlayıcısının tahsilatı reddettiğini veya
	// tahsilatın tamamlanamadığını belirtir (402).
	ErrPaymentFailed = errors.New("ödeme alınamadı")

	// ErrUserBanned, banlı kullanıcının katılım denediğini belirtir (403).
	ErrUserBanned = errors.New("hesabınız kampanyalara katılıma kapatılmıştır")

	// ErrConflict, optimistic concurrency çakışmasının retry limitini
	// aştığını belirtir (409). İstemci işlemi tekrar deneyebilir.
	ErrConflict = errors.New("işlem çakışması, lütfen tekrar deneyin")
)
