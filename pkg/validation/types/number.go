package types

import (
	"fmt"

	"github.com/biyonik/groupbuy-api/pkg/validation"
)

// NumberType, sayısal alanların doğrulamasını yönetir. JSON decode
// sonrası sayılar float64 geldiği için tüm sayısal tipler float64
// üzerinden karşılaştırılır.
type NumberType struct {
	BaseType
	min       *float64
	max       *float64
	isInteger bool
}

// Required, alanı zorunlu olarak işaretler (method chaining).
func (n *NumberType) Required() *NumberType {
	n.SetRequired()
	return n
}

// Label, hata mesajlarında kullanılacak alan adını atar.
func (n *NumberType) Label(label string) *NumberType {
	n.SetLabel(label)
	return n
}

// Default, sayısal varsayılan değer atar.
func (n *NumberType) Default(value any) *NumberType {
	switch v := value.(type) {
	case int:
		n.SetDefault(float64(v))
	case float32:
		n.SetDefault(float64(v))
	default:
		n.SetDefault(value)
	}
	return n
}

// Min, minimum değeri belirler.
func (n *NumberType) Min(val float64) *NumberType {
	n.min = &val
	return n
}

// Max, maksimum değeri belirler.
func (n *NumberType) Max(val float64) *NumberType {
	n.max = &val
	return n
}

// Integer, değerin tamsayı olmasını şart koşar.
func (n *NumberType) Integer() *NumberType {
	n.isInteger = true
	return n
}

// Validate, sayısal alanın doğrulama mantığını çalıştırır.
func (n *NumberType) Validate(field string, value any, result *validation.ValidationResult) {
	n.BaseType.Validate(field, value, result)
	if result.HasErrors() {
		return
	}

	if value == nil {
		return
	}

	fieldName := n.fieldName(field)

	var num float64
	switch v := value.(type) {
	case int:
		num = float64(v)
	case int64:
		num = float64(v)
	case float32:
		num = float64(v)
	case float64:
		num = v
	default:
		result.AddError(field, fmt.Sprintf("%s alanı sayısal bir değer olmalıdır", fieldName))
		return
	}

	if n.isInteger && num != float64(int64(num)) {
		result.AddError(field, fmt.Sprintf("%s alanı tamsayı olmalıdır", fieldName))
	}

	if n.min != nil && num < *n.min {
		result.AddError(field, fmt.Sprintf("%s alanı %v değerinden küçük olamaz", fieldName, *n.min))
	}

	if n.max != nil && num > *n.max {
		result.AddError(field, fmt.Sprintf("%s alanı %v değerinden büyük olamaz", fieldName, *n.max))
	}
}
