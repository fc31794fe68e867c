package validation

import "fmt"

// FieldError, belirli bir alana bağlı doğrulama hatasıdır. CrossValidate
// fonksiyonlarından döndürüldüğünde hata ilgili alana yazılır.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError, yeni bir FieldError oluşturur.
//
//	return validation.NewFieldError("deadline", "Son tarih geçmişte olamaz")
func NewFieldError(field, message string) error {
	return &FieldError{
		Field:   field,
		Message: message,
	}
}
