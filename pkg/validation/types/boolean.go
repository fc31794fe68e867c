package types

import (
	"fmt"

	"github.com/biyonik/groupbuy-api/pkg/validation"
)

// BooleanType, boolean alanların doğrulamasını yönetir.
type BooleanType struct {
	BaseType
}

// Required, alanı zorunlu olarak işaretler (method chaining).
func (b *BooleanType) Required() *BooleanType {
	b.SetRequired()
	return b
}

// Label, hata mesajlarında kullanılacak alan adını atar.
func (b *BooleanType) Label(label string) *BooleanType {
	b.SetLabel(label)
	return b
}

// Default, varsayılan boolean değer atar.
func (b *BooleanType) Default(value bool) *BooleanType {
	b.SetDefault(value)
	return b
}

// Validate, değerin boolean olduğunu doğrular.
func (b *BooleanType) Validate(field string, value any, result *validation.ValidationResult) {
	b.BaseType.Validate(field, value, result)
	if result.HasErrors() {
		return
	}

	if value == nil {
		return
	}

	if _, ok := value.(bool); !ok {
		result.AddError(field, fmt.Sprintf("%s alanı boolean tipinde olmalıdır", b.fieldName(field)))
	}
}
