// Package response, API yanıtlarını tek bir JSON sözleşmesi üzerinden üretir.
// Tüm endpoint'ler aynı zarfı döndürür:
//
//	{"success": true,  "data": {...}}
//	{"success": false, "errors": ["..."]}
//
// Başarılı yanıtlarda errors alanı, hatalı yanıtlarda data alanı hiç yazılmaz.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// JSONResponse, tüm API yanıtlarının ortak veri sözleşmesidir.
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// Send, yanıtı verilen statü kodu ile istemciye yazar.
func Send(w http.ResponseWriter, status int, payload JSONResponse) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// Success, başarılı bir işlemin sonucunu döndürür. meta opsiyoneldir
// (sayfalama, toplam kayıt vb.).
func Success(w http.ResponseWriter, status int, data interface{}, meta interface{}) error {
	return Send(w, status, JSONResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error, hata yanıtı döndürür. Gelen hatanın tipine göre errors dizisini
// doldurur; validation hatalarında alan adları mesajın başına eklenir.
func Error(w http.ResponseWriter, status int, errData any) error {
	payload := JSONResponse{Success: false}

	switch e := errData.(type) {
	case string:
		payload.Errors = []string{e}
	case error:
		payload.Errors = []string{e.Error()}
	case []string:
		payload.Errors = e
	case map[string][]string:
		payload.Errors = flattenFieldErrors(e)
	default:
		payload.Errors = []string{"Bilinmeyen bir sunucu hatası oluştu"}
	}

	return Send(w, status, payload)
}

// flattenFieldErrors, alan bazlı validation hatalarını deterministik sırada
// düz bir listeye çevirir.
func flattenFieldErrors(fieldErrors map[string][]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		for _, msg := range fieldErrors[field] {
			out = append(out, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return out
}
