// Package middleware, HTTP istek yaşam döngüsüne müdahale eden cross-cutting
// katmanları içerir: logging, authentication, rate limiting, panic recovery
// ve CORS. Her middleware bir http.Handler alıp yeni bir http.Handler üretir.
package middleware

import (
	"log"
	"net/http"
	"time"
)

// Middleware, bir sonraki http.Handler'ı sarıp yeni bir handler döndüren
// fonksiyon tipidir.
type Middleware func(next http.Handler) http.Handler

// Logging, her isteğin girişini ve toplam işlem süresini loglar.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("-> %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("<- %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
