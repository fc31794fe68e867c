// -----------------------------------------------------------------------------
// Authentication Middleware
// -----------------------------------------------------------------------------
// JWT token doğrulaması yaparak kullanıcının authenticate olup olmadığını
// kontrol eder. Geçerli token'daki kimlik bilgileri context'e yazılır:
//
//   - "user":       auth.User
//   - "user_id":    int64
//   - "user_email": string
//   - "user_role":  string
// -----------------------------------------------------------------------------

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/biyonik/groupbuy-api/internal/http/response"
	"github.com/biyonik/groupbuy-api/pkg/auth"
)

// Auth, default JWT config ile authentication middleware'i döndürür.
func Auth() Middleware {
	return AuthWithConfig(nil)
}

// AuthWithConfig, özel JWT config ile authentication middleware'i döndürür.
func AuthWithConfig(config *auth.JWTConfig) Middleware {
	if config == nil {
		config = auth.DefaultJWTConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header gerekli")
				return
			}

			token := extractBearerToken(authHeader)
			if token == "" {
				response.Unauthorized(w, "Geçersiz Authorization format (Bearer token bekleniyor)")
				return
			}

			claims, err := auth.ParseToken(token, config)
			if err != nil {
				response.Unauthorized(w, "Geçersiz veya süresi dolmuş token")
				return
			}

			// Refresh token ile normal endpoint'lere erişilemez
			if claims.Role == "refresh" {
				response.Unauthorized(w, "Refresh token bu endpoint için kullanılamaz")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserContext(r.Context(), claims)))
		})
	}
}

// OptionalAuth, token varsa kimliği context'e ekler, yoksa veya geçersizse
// guest olarak devam eder. Hem authenticated hem guest kullanıcılara açık
// endpoint'lerde kullanılır.
func OptionalAuth() Middleware {
	config := auth.DefaultJWTConfig()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(token, config)
			if err != nil || claims.Role == "refresh" {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserContext(r.Context(), claims)))
		})
	}
}

// withUserContext, doğrulanmış claim'leri context'e yazar.
func withUserContext(ctx context.Context, claims *auth.JWTClaims) context.Context {
	user := &auth.AuthenticatedUser{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}

	ctx = context.WithValue(ctx, "user", user)
	ctx = context.WithValue(ctx, "user_id", claims.UserID)
	ctx = context.WithValue(ctx, "user_email", claims.Email)
	ctx = context.WithValue(ctx, "user_role", claims.Role)
	return ctx
}

// extractBearerToken, "Bearer eyJ..." formatındaki header'dan token'ı çıkarır.
func extractBearerToken(authHeader string) string {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// GetAuthUser, context'ten authenticated user'ı döndürür (nil = guest).
func GetAuthUser(ctx context.Context) auth.User {
	user, ok := ctx.Value("user").(auth.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID, context'ten user ID'yi döndürür (0 = guest).
func GetUserID(ctx context.Context) int64 {
	id, ok := ctx.Value("user_id").(int64)
	if !ok {
		return 0
	}
	return id
}

// GetUserEmail, context'ten user email'ini döndürür.
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value("user_email").(string)
	if !ok {
		return ""
	}
	return email
}

// GetUserRole, context'ten user role'ünü döndürür.
func GetUserRole(ctx context.Context) string {
	role, ok := ctx.Value("user_role").(string)
	if !ok {
		return ""
	}
	return role
}
