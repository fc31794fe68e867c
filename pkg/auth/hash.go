// -----------------------------------------------------------------------------
// Şifre Hash'leme
// -----------------------------------------------------------------------------
// Kullanıcı şifreleri bcrypt ile hash'lenir. Salt bcrypt tarafından otomatik
// eklenir; cost faktörü zamanla artırılabilir.
// -----------------------------------------------------------------------------

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost, bcrypt maliyet faktörüdür. Yüksek değer daha güvenli ama daha
// yavaştır; production için 12 önerilir.
const HashCost = 12

// Hash, düz metin şifreyi bcrypt ile hash'ler. Orijinal şifre asla
// saklanmamalı, doğrulama Check ile yapılmalıdır.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// Check, düz metin şifreyi hash ile karşılaştırır. bcrypt karşılaştırması
// sabit sürelidir (timing attack koruması).
func Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash, hash'in güncel cost faktöründen düşük bir değerle üretilip
// üretilmediğini söyler. Login sırasında şifre yeniden hash'lenerek
// güncellenebilir.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}
	return cost < HashCost
}
