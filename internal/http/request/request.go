// Package request, *http.Request üzerine JSON parse, route parametresi ve
// auth context okuma kolaylıkları ekleyen bir sarmalayıcı sağlar.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/biyonik/groupbuy-api/pkg/auth"
)

// RequestParamsKeyType, route parametrelerinin context anahtarıdır.
type RequestParamsKeyType struct{}

var RequestParamsKey = RequestParamsKeyType{}

// Request, http.Request'in üzerine inşa edilmiş sarmalayıcıdır.
type Request struct {
	*http.Request
}

// New, *http.Request'i Request'e dönüştürür.
func New(r *http.Request) *Request {
	return &Request{Request: r}
}

// IsJSON, Content-Type başlığının JSON olup olmadığını kontrol eder.
func (r *Request) IsJSON() bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// BearerToken, Authorization başlığından Bearer token'ı ayrıştırır.
// Başlık yoksa veya format bozuksa boş string döner.
func (r *Request) BearerToken() string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}

// Query, URL query parametresini okur; yoksa defaultValue döner.
func (r *Request) Query(key string, defaultValue string) string {
	vals, exists := r.URL.Query()[key]
	if !exists || len(vals) == 0 {
		return defaultValue
	}
	return vals[0]
}

// QueryInt, query parametresini int olarak okur; yoksa veya parse
// edilemiyorsa defaultValue döner.
func (r *Request) QueryInt(key string, defaultValue int) int {
	raw := r.Query(key, "")
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return val
}

// RouteParam, route pattern'indeki parametreyi döndürür (örn: {id}).
func (r *Request) RouteParam(key string) string {
	params, ok := r.Context().Value(RequestParamsKey).(map[string]string)
	if !ok {
		return ""
	}
	return params[key]
}

// RouteParamInt64, route parametresini int64 olarak okur.
func (r *Request) RouteParamInt64(key string) (int64, error) {
	raw := r.RouteParam(key)
	if raw == "" {
		return 0, errors.New("route parametresi bulunamadı: " + key)
	}
	return strconv.ParseInt(raw, 10, 64)
}

// ParseJSON, request body'deki JSON'ı verilen struct'a parse eder.
// Body 10MB ile sınırlandırılır.
func (r *Request) ParseJSON(dest interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, dest)
}

// GetIP, client IP adresini döndürür. Reverse proxy arkasında
// X-Forwarded-For / X-Real-IP başlıkları önceliklidir.
func (r *Request) GetIP() string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// AuthUser, auth middleware'inin context'e koyduğu kullanıcıyı döndürür.
func (r *Request) AuthUser() (auth.User, error) {
	contextUser := r.Context().Value("user")
	if contextUser == nil {
		return nil, errors.New("unauthorized: no user in context")
	}

	authUser, ok := contextUser.(auth.User)
	if !ok {
		return nil, errors.New("unauthorized: invalid user type")
	}

	return authUser, nil
}

// AuthUserID, authenticated kullanıcının ID'sini döndürür.
func (r *Request) AuthUserID() (int64, error) {
	user, err := r.AuthUser()
	if err != nil {
		return 0, err
	}
	return user.GetID(), nil
}

// AuthUserRole, authenticated kullanıcının rolünü döndürür.
func (r *Request) AuthUserRole() (string, error) {
	user, err := r.AuthUser()
	if err != nil {
		return "", err
	}
	return user.GetRole(), nil
}

// IsAuthenticated, istekte doğrulanmış kullanıcı olup olmadığını söyler.
func (r *Request) IsAuthenticated() bool {
	_, err := r.AuthUser()
	return err == nil
}
