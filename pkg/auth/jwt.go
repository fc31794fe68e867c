// -----------------------------------------------------------------------------
// JWT Token Yönetimi
// -----------------------------------------------------------------------------
// Access ve refresh token üretimi ile doğrulaması. HS256 imzalama kullanılır;
// refresh token'lar Role claim'inde "refresh" taşır ve normal endpoint'lerde
// reddedilir.
// -----------------------------------------------------------------------------

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims, token payload'ında taşınan bilgilerdir.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTConfig, token üretim ve doğrulama ayarlarını içerir.
type JWTConfig struct {
	Secret           string
	Issuer           string
	ExpirationTime   time.Duration // Access token ömrü
	RefreshExpiresIn time.Duration // Refresh token ömrü
}

// DefaultJWTConfig, varsayılan JWT ayarlarını döndürür.
//
// Production'da bu ayarlar environment variable'lardan okunmalıdır!
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:           "your-super-secret-jwt-key-change-this-in-production",
		Issuer:           "groupbuy-go",
		ExpirationTime:   1 * time.Hour,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	}
}

func buildToken(claims JWTClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateToken, kullanıcı bilgileriyle yeni bir access token oluşturur.
//
//	token, err := auth.GenerateToken(123, "user@example.com", "user", cfg)
func GenerateToken(userID int64, email, role string, config *JWTConfig) (string, error) {
	if config == nil {
		config = DefaultJWTConfig()
	}

	now := time.Now()

	return buildToken(JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.Issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(config.ExpirationTime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}, config.Secret)
}

// GenerateRefreshToken, uzun ömürlü bir refresh token oluşturur. Access token
// expire olduğunda kullanıcıyı tekrar login'e zorlamak yerine bu token ile
// yenisi alınır.
func GenerateRefreshToken(userID int64, email string, config *JWTConfig) (string, error) {
	if config == nil {
		config = DefaultJWTConfig()
	}

	now := time.Now()

	return buildToken(JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   "refresh", // Refresh token'ı ayırt etmek için
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.Issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(config.RefreshExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}, config.Secret)
}

// ParseToken, token string'ini doğrular ve claims'leri döndürür. İmza hatası,
// expire olmuş token veya beklenmeyen imza algoritması hata döndürür.
func ParseToken(tokenString string, config *JWTConfig) (*JWTClaims, error) {
	if config == nil {
		config = DefaultJWTConfig()
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Algorithm confusion saldırısına karşı imza metodu kontrolü
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
