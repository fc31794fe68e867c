// Package validation, form verileri ve API payload'ları için tip bazlı ve
// şema bazlı doğrulama sağlar. Laravel'deki validation mantığının Go
// karşılığıdır: her alan bir Type ile tanımlanır, şema tüm veri setini
// doğrular ve temizlenmiş veriyi döndürür.
package validation

// ValidationResult, bir doğrulama işleminin sonucunu temsil eder; hem alan
// bazlı hataları hem de temizlenmiş veriyi tutar.
type ValidationResult struct {
	errors    map[string][]string
	validData map[string]any
}

// NewResult, boş bir ValidationResult oluşturur.
func NewResult() *ValidationResult {
	return &ValidationResult{
		errors:    make(map[string][]string),
		validData: make(map[string]any),
	}
}

// AddError, belirtilen alan için bir doğrulama hatası ekler.
func (r *ValidationResult) AddError(field, message string) {
	r.errors[field] = append(r.errors[field], message)
}

// HasErrors, en az bir hata olup olmadığını döndürür.
func (r *ValidationResult) HasErrors() bool {
	return len(r.errors) > 0
}

// Errors, alan bazlı hata mesajlarını döndürür.
func (r *ValidationResult) Errors() map[string][]string {
	return r.errors
}

// ValidData, doğrulanmış ve temizlenmiş veriyi döndürür. Sadece hiç hata
// yoksa doludur.
func (r *ValidationResult) ValidData() map[string]any {
	return r.validData
}

// SetValidData, temiz veriyi ayarlar.
func (r *ValidationResult) SetValidData(data map[string]any) {
	r.validData = data
}

// Type, alan bazlı doğrulama ve ön işleme (transform) kontratıdır. Her
// veri tipi (StringType, NumberType vb.) bu interface'i uygular.
type Type interface {
	// Validate, doğrulama mantığını çalıştırır; hatalar result'a eklenir.
	Validate(field string, value any, result *ValidationResult)

	// Transform, doğrulama öncesi veriyi temizler ve dönüştürür
	// (trim, varsayılan değer, tip dönüşümü).
	Transform(value any) (any, error)
}

// Schema, tüm veri setini doğrulayan şema kontratıdır.
type Schema interface {
	// Validate, veri haritasını doğrular.
	Validate(data map[string]any) *ValidationResult

	// Shape, alan adı -> Type eşlemesini tanımlar (method chaining).
	Shape(shape map[string]Type) Schema

	// CrossValidate, alanlar arası doğrulama fonksiyonu ekler.
	CrossValidate(fn func(data map[string]any) error) Schema
}
