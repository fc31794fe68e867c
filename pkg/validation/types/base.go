// Package types, tip bazlı doğrulama nesnelerini yönetir. Her tip
// (String, Number, Boolean) BaseType'ı gömerek zorunluluk, label ve
// transform mekanizmasını paylaşır.
package types

import (
	"fmt"

	"github.com/biyonik/groupbuy-api/pkg/validation"
)

// BaseType, tüm tiplerin gömeceği ortak doğrulama ve dönüşüm altyapısıdır.
type BaseType struct {
	isRequired      bool
	label           string
	defaultValue    any
	transformations []func(any) (any, error)
}

// SetRequired, alanı zorunlu olarak işaretler.
func (b *BaseType) SetRequired() {
	b.isRequired = true
}

// SetLabel, alan için insan okunabilir bir isim atar. Hata mesajlarında
// alan adı yerine kullanılır.
func (b *BaseType) SetLabel(label string) {
	b.label = label
}

// SetDefault, değer nil olduğunda uygulanacak varsayılanı belirler.
func (b *BaseType) SetDefault(value any) {
	b.defaultValue = value
}

// AddTransform, değere uygulanacak dönüşüm fonksiyonu ekler (trim vb.).
func (b *BaseType) AddTransform(fn func(any) (any, error)) {
	b.transformations = append(b.transformations, fn)
}

// Transform, varsayılan değeri ve tanımlı dönüşümleri sırayla uygular.
func (b *BaseType) Transform(value any) (any, error) {
	if value == nil && b.defaultValue != nil {
		value = b.defaultValue
	}

	if value == nil {
		return nil, nil
	}

	var err error
	for _, fn := range b.transformations {
		value, err = fn(value)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

// Validate, zorunluluk kontrolünü uygular. Tip bazlı kurallar gömen
// tipin Validate metodunda çalışır.
func (b *BaseType) Validate(field string, value any, result *validation.ValidationResult) {
	fieldName := b.label
	if fieldName == "" {
		fieldName = field
	}

	if b.isRequired {
		if value == nil {
			result.AddError(field, fmt.Sprintf("%s alanı zorunludur", fieldName))
			return
		}
		if str, ok := value.(string); ok && str == "" {
			result.AddError(field, fmt.Sprintf("%s alanı zorunludur", fieldName))
			return
		}
	}
}

func (b *BaseType) fieldName(field string) string {
	if b.label != "" {
		return b.label
	}
	return field
}
