package validation

import (
	"fmt"
)

// ValidationSchema, Schema interface'inin standart implementasyonudur.
// Doğrulama üç aşamada ilerler: transform, alan bazlı validate ve (hata
// yoksa) cross-validate.
type ValidationSchema struct {
	shape           map[string]Type
	crossValidators []func(data map[string]any) error
}

// Make, yeni bir ValidationSchema oluşturur.
//
//	schema := validation.Make().Shape(map[string]validation.Type{
//	    "title": types.String().Required().Min(3).Max(150),
//	})
func Make() *ValidationSchema {
	return &ValidationSchema{
		shape: make(map[string]Type),
	}
}

// Shape, şemadaki alan tiplerini tanımlar (method chaining).
func (vs *ValidationSchema) Shape(shape map[string]Type) Schema {
	vs.shape = shape
	return vs
}

// CrossValidate, alanlar arası doğrulama fonksiyonu ekler. Fonksiyonlar
// sadece alan bazlı doğrulama hatasız geçtiyse çalışır.
func (vs *ValidationSchema) CrossValidate(fn func(data map[string]any) error) Schema {
	vs.crossValidators = append(vs.crossValidators, fn)
	return vs
}

// Validate, veri haritasını şemaya göre doğrular.
func (vs *ValidationSchema) Validate(data map[string]any) *ValidationResult {
	result := NewResult()
	transformedData := make(map[string]any)

	// 1. Transform: ham veriyi temizle
	for field, typ := range vs.shape {
		value := data[field]

		transformedValue, err := typ.Transform(value)
		if err != nil {
			result.AddError(field, fmt.Sprintf("Dönüşüm hatası: %s", err.Error()))
			continue
		}
		transformedData[field] = transformedValue
	}

	// 2. Alan bazlı doğrulama
	for field, typ := range vs.shape {
		typ.Validate(field, transformedData[field], result)
	}

	// 3. Çapraz alan doğrulama (sadece hata yoksa)
	if !result.HasErrors() {
		for _, fn := range vs.crossValidators {
			if err := fn(transformedData); err != nil {
				if fieldErr, ok := err.(*FieldError); ok {
					result.AddError(fieldErr.Field, fieldErr.Message)
				} else {
					result.AddError("_cross_validation", err.Error())
				}
			}
		}
	}

	if !result.HasErrors() {
		result.SetValidData(transformedData)
	}

	return result
}
