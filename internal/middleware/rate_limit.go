package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/biyonik/groupbuy-api/internal/http/response"
)

// -----------------------------------------------------------------------------
// Rate Limiting Middleware
// -----------------------------------------------------------------------------
// Key başına (IP veya user) ayrı bir token bucket tutar; bucket'lar
// golang.org/x/time/rate üzerine kuruludur. Uzun süre istek gelmeyen
// bucket'lar periyodik olarak temizlenir, cleanup goroutine'i graceful
// shutdown'da durdurulabilir.
// -----------------------------------------------------------------------------

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu              sync.Mutex
	clients         map[string]*clientLimiter
	maxRequests     int
	windowInSeconds int
	limit           rate.Limit
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
}

// Limiter registry - graceful shutdown için
var (
	limiterRegistry   = make(map[*RateLimiter]bool)
	limiterRegistryMu sync.Mutex
)

// NewRateLimiter, windowInSeconds içinde en fazla maxRequests isteğe izin
// veren bir limiter oluşturur.
func NewRateLimiter(maxRequests int, windowInSeconds int) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	limiter := &RateLimiter{
		clients:         make(map[string]*clientLimiter),
		maxRequests:     maxRequests,
		windowInSeconds: windowInSeconds,
		limit:           rate.Limit(float64(maxRequests) / float64(windowInSeconds)),
		ctx:             ctx,
		cancel:          cancel,
	}

	limiterRegistryMu.Lock()
	limiterRegistry[limiter] = true
	limiterRegistryMu.Unlock()

	limiter.wg.Add(1)
	go limiter.cleanupLoop()

	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	defer rl.wg.Done()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

// cleanup, iki pencere süresinden uzun süredir istek göndermeyen client'ların
// bucket'larını siler.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	maxAge := 2 * time.Duration(rl.windowInSeconds) * time.Second
	now := time.Now()

	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) > maxAge {
			delete(rl.clients, key)
		}
	}
}

// Stop, limiter'ı gracefully durdurur.
func (rl *RateLimiter) Stop() {
	limiterRegistryMu.Lock()
	delete(limiterRegistry, rl)
	limiterRegistryMu.Unlock()

	rl.cancel()
	rl.wg.Wait()
}

// StopAllLimiters, tüm aktif rate limiter'ları durdurur. main'deki shutdown
// hook'undan çağrılır.
func StopAllLimiters() {
	limiterRegistryMu.Lock()
	limiters := make([]*RateLimiter, 0, len(limiterRegistry))
	for limiter := range limiterRegistry {
		limiters = append(limiters, limiter)
	}
	limiterRegistryMu.Unlock()

	for _, limiter := range limiters {
		limiter.Stop()
	}
}

// Allow, key için bir isteğe izin verilip verilmeyeceğini kontrol eder.
// Kalan token sayısını ve reddedildiyse tahmini bekleme süresini döndürür.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	client, exists := rl.clients[key]
	if !exists {
		client = &clientLimiter{
			limiter: rate.NewLimiter(rl.limit, rl.maxRequests),
		}
		rl.clients[key] = client
	}
	client.lastSeen = time.Now()

	if client.limiter.Allow() {
		remaining := int(client.limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		return true, remaining, 0
	}

	// Reddedildi: bir sonraki token'a kalan süreyi hesapla, rezervasyonu
	// tüketmeden iptal et
	reservation := client.limiter.Reserve()
	retryAfter := reservation.Delay()
	reservation.Cancel()

	return false, 0, retryAfter
}

// RateLimit, IP bazlı rate limiting middleware'ini döndürür.
func RateLimit(maxRequests int, windowInSeconds int) Middleware {
	limiter := NewRateLimiter(maxRequests, windowInSeconds)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr

			allowed, remaining, retryAfter := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Duration(windowInSeconds)*time.Second).Unix()))

			if !allowed {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
				response.TooManyRequests(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
