// -----------------------------------------------------------------------------
// Hazır Hata Yanıtları
// -----------------------------------------------------------------------------
// Controller'larda tekrar eden hata yanıtları için kısayollar. Mesaj boş
// geçilirse Türkçe varsayılan kullanılır.
// -----------------------------------------------------------------------------

package response

import (
	"net/http"
)

// InvalidJSON, bozuk request body için 400 döndürür.
func InvalidJSON(w http.ResponseWriter) {
	Error(w, http.StatusBadRequest, "Geçersiz JSON formatı")
}

// ValidationError, alan bazlı doğrulama hatalarıyla 422 döndürür.
func ValidationError(w http.ResponseWriter, errors map[string][]string) {
	Error(w, http.StatusUnprocessableEntity, errors)
}

// FieldError, tek bir alan hatası için 422 döndürür.
func FieldError(w http.ResponseWriter, field string, message string) {
	Error(w, http.StatusUnprocessableEntity, map[string][]string{
		field: {message},
	})
}

// BadRequest, hatalı istek parametreleri için 400 döndürür.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized, kimlik doğrulaması eksik veya geçersizse 401 döndürür.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Kimlik doğrulaması gerekli"
	}
	Error(w, http.StatusUnauthorized, message)
}

// PaymentRequired, ödeme sağlayıcı tahsilatı reddettiğinde 402 döndürür.
func PaymentRequired(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Ödeme alınamadı"
	}
	Error(w, http.StatusPaymentRequired, message)
}

// Forbidden, yetki yetersizse 403 döndürür.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bu işlem için yetkiniz yok"
	}
	Error(w, http.StatusForbidden, message)
}

// NotFound, kayıt bulunamadığında 404 döndürür.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Kayıt bulunamadı"
	}
	Error(w, http.StatusNotFound, message)
}

// Conflict, kaynak durumuyla çelişen istekler için 409 döndürür
// (duplicate katılım, geçersiz durum geçişi, dolu kampanya vb.).
func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, message)
}

// TooManyRequests, rate limit aşıldığında 429 döndürür.
func TooManyRequests(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Çok fazla istek gönderdiniz. Lütfen daha sonra tekrar deneyin."
	}
	Error(w, http.StatusTooManyRequests, message)
}

// ServerError, beklenmeyen sunucu hataları için 500 döndürür.
func ServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Sunucu hatası"
	}
	Error(w, http.StatusInternalServerError, message)
}
