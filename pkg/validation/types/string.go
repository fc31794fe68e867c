package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/biyonik/groupbuy-api/pkg/validation"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// StringType, metin alanlarının doğrulamasını ve dönüşümünü yönetir.
type StringType struct {
	BaseType
	minLength     *int
	maxLength     *int
	checkEmail    bool
	allowedValues []string
}

// Required, alanı zorunlu olarak işaretler (method chaining).
func (s *StringType) Required() *StringType {
	s.SetRequired()
	return s
}

// Label, hata mesajlarında kullanılacak alan adını atar.
func (s *StringType) Label(label string) *StringType {
	s.SetLabel(label)
	return s
}

// Default, alan için varsayılan değer atar.
func (s *StringType) Default(value string) *StringType {
	s.SetDefault(value)
	return s
}

// Min, minimum uzunluğu ayarlar.
func (s *StringType) Min(length int) *StringType {
	s.minLength = &length
	return s
}

// Max, maksimum uzunluğu ayarlar.
func (s *StringType) Max(length int) *StringType {
	s.maxLength = &length
	return s
}

// Email, alanın e-posta formatında olmasını zorunlu kılar.
func (s *StringType) Email() *StringType {
	s.checkEmail = true
	return s
}

// OneOf, alanın verilen değerlerden biri olmasını şart koşar.
//
//	types.String().OneOf([]string{"pending", "active", "cancelled"})
func (s *StringType) OneOf(values []string) *StringType {
	s.allowedValues = values
	return s
}

// Trim, baştaki ve sondaki boşlukları temizleyen transform ekler.
func (s *StringType) Trim() *StringType {
	s.AddTransform(func(value any) (any, error) {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("Trim sadece string değerler için uygulanabilir")
		}
		return strings.TrimSpace(str), nil
	})
	return s
}

// Validate, değeri StringType kurallarına göre doğrular.
func (s *StringType) Validate(field string, value any, result *validation.ValidationResult) {
	s.BaseType.Validate(field, value, result)
	if result.HasErrors() {
		return
	}

	if value == nil {
		return
	}

	fieldName := s.fieldName(field)

	str, ok := value.(string)
	if !ok {
		result.AddError(field, fmt.Sprintf("%s alanı metin tipinde olmalıdır", fieldName))
		return
	}

	if s.minLength != nil && len(str) < *s.minLength {
		result.AddError(field, fmt.Sprintf("%s alanı en az %d karakter olmalıdır", fieldName, *s.minLength))
	}
	if s.maxLength != nil && len(str) > *s.maxLength {
		result.AddError(field, fmt.Sprintf("%s alanı en fazla %d karakter olmalıdır", fieldName, *s.maxLength))
	}

	if s.checkEmail && !emailPattern.MatchString(str) {
		result.AddError(field, fmt.Sprintf("%s alanı geçerli bir e-posta formatında değil", fieldName))
	}

	if len(s.allowedValues) > 0 {
		allowed := false
		for _, v := range s.allowedValues {
			if str == v {
				allowed = true
				break
			}
		}
		if !allowed {
			result.AddError(field, fmt.Sprintf("%s alanı geçersiz bir değer içeriyor", fieldName))
		}
	}
}
