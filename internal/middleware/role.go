// -----------------------------------------------------------------------------
// Role-Based Authorization Middleware
// -----------------------------------------------------------------------------
// Kullanıcının belirli bir role sahip olup olmadığını kontrol eder. Bu
// middleware'den önce Auth() çalışmış olmalıdır; aksi halde context'te user
// bilgisi bulunmaz.
// -----------------------------------------------------------------------------

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/biyonik/groupbuy-api/internal/http/response"
)

// Role, belirtilen rollerden birine sahip kullanıcılara izin veren
// middleware döndürür.
//
// Kullanım:
//
//	r.DELETE("/api/admin/users/{id}", handler).
//	    Middleware(middleware.Auth()).
//	    Middleware(middleware.Role("admin"))
func Role(allowedRoles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetUserRole(r.Context())
			if userRole == "" {
				response.Unauthorized(w, "")
				return
			}

			for _, allowedRole := range allowedRoles {
				if userRole == allowedRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "")
		})
	}
}

// Admin, Role("admin") kısayoludur.
func Admin() Middleware {
	return Role("admin")
}

// Throttle, authenticated user bazlı rate limiting sağlar. IP bazlı
// RateLimit'ten farklı olarak user ID üzerinden sayar; kullanıcı
// authenticate değilse saymadan geçer (Auth middleware zaten reddeder).
func Throttle(maxRequests int, windowInSeconds int) Middleware {
	limiter := NewRateLimiter(maxRequests, windowInSeconds)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "user:" + strconv.FormatInt(userID, 10)
			allowed, remaining, retryAfter := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(windowInSeconds)*time.Second).Unix(), 10))

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				response.TooManyRequests(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
