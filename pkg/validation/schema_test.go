package validation_test

import (
	"testing"

	"github.com/biyonik/groupbuy-api/pkg/validation"
	"github.com/biyonik/groupbuy-api/pkg/validation/types"
)

func campaignSchema() validation.Schema {
	return validation.Make().Shape(map[string]validation.Type{
		"title":        types.String().Required().Min(3).Max(150).Trim().Label("Başlık"),
		"category":     types.String().Required().OneOf([]string{"elektronik", "gida", "giyim"}).Label("Kategori"),
		"price":        types.Number().Required().Min(1).Label("Fiyat"),
		"target_count": types.Number().Required().Min(2).Integer().Label("Hedef katılımcı"),
	})
}

func TestSchemaValidate_Success(t *testing.T) {
	result := campaignSchema().Validate(map[string]any{
		"title":        "  Toplu Kahve Alımı  ",
		"category":     "gida",
		"price":        float64(250),
		"target_count": float64(10),
	})

	if result.HasErrors() {
		t.Fatalf("hata beklenmiyordu: %v", result.Errors())
	}

	// Trim transform'u uygulanmış olmalı
	if result.ValidData()["title"] != "Toplu Kahve Alımı" {
		t.Errorf("title trim edilmedi: %q", result.ValidData()["title"])
	}
}

func TestSchemaValidate_RequiredFields(t *testing.T) {
	result := campaignSchema().Validate(map[string]any{})

	if !result.HasErrors() {
		t.Fatal("boş veri için hata bekleniyordu")
	}

	for _, field := range []string{"title", "category", "price", "target_count"} {
		if len(result.Errors()[field]) == 0 {
			t.Errorf("%s alanı için zorunluluk hatası bekleniyordu", field)
		}
	}

	if len(result.ValidData()) != 0 {
		t.Error("hatalı doğrulamada validData boş olmalı")
	}
}

func TestSchemaValidate_FieldRules(t *testing.T) {
	result := campaignSchema().Validate(map[string]any{
		"title":        "ab",
		"category":     "mobilya",
		"price":        float64(0),
		"target_count": 2.5,
	})

	if !result.HasErrors() {
		t.Fatal("kural ihlalleri için hata bekleniyordu")
	}

	if len(result.Errors()["title"]) == 0 {
		t.Error("min uzunluk hatası bekleniyordu")
	}
	if len(result.Errors()["category"]) == 0 {
		t.Error("OneOf hatası bekleniyordu")
	}
	if len(result.Errors()["price"]) == 0 {
		t.Error("min değer hatası bekleniyordu")
	}
	if len(result.Errors()["target_count"]) == 0 {
		t.Error("tamsayı hatası bekleniyordu")
	}
}

func TestSchemaValidate_Email(t *testing.T) {
	schema := validation.Make().Shape(map[string]validation.Type{
		"email": types.String().Required().Email().Label("Email"),
	})

	if result := schema.Validate(map[string]any{"email": "user@example.com"}); result.HasErrors() {
		t.Errorf("geçerli email için hata beklenmiyordu: %v", result.Errors())
	}

	if result := schema.Validate(map[string]any{"email": "not-an-email"}); !result.HasErrors() {
		t.Error("geçersiz email için hata bekleniyordu")
	}
}

func TestSchemaValidate_CrossValidate(t *testing.T) {
	schema := validation.Make().Shape(map[string]validation.Type{
		"deposit_rate": types.Number().Required().Min(0).Max(100),
	}).CrossValidate(func(data map[string]any) error {
		rate, _ := data["deposit_rate"].(float64)
		if rate > 50 {
			return validation.NewFieldError("deposit_rate", "Depozito oranı %50'yi aşamaz")
		}
		return nil
	})

	if result := schema.Validate(map[string]any{"deposit_rate": float64(30)}); result.HasErrors() {
		t.Errorf("hata beklenmiyordu: %v", result.Errors())
	}

	result := schema.Validate(map[string]any{"deposit_rate": float64(80)})
	if !result.HasErrors() {
		t.Fatal("cross validation hatası bekleniyordu")
	}
	if len(result.Errors()["deposit_rate"]) == 0 {
		t.Error("hata deposit_rate alanına yazılmalıydı")
	}
}

func TestSchemaValidate_DefaultValue(t *testing.T) {
	schema := validation.Make().Shape(map[string]validation.Type{
		"category": types.String().Default("genel"),
	})

	result := schema.Validate(map[string]any{})
	if result.HasErrors() {
		t.Fatalf("hata beklenmiyordu: %v", result.Errors())
	}

	if result.ValidData()["category"] != "genel" {
		t.Errorf("varsayılan değer uygulanmadı: %v", result.ValidData()["category"])
	}
}
