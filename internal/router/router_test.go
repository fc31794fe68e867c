package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biyonik/groupbuy-api/internal/http/request"
)

func TestRouter_ParamExtraction(t *testing.T) {
	r := New()

	var gotID string
	r.GET("/api/payments/{id}", func(w http.ResponseWriter, req *request.Request) {
		gotID = req.RouteParam("id")
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/payments/42", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got: %d", rec.Code)
	}
	if gotID != "42" {
		t.Errorf("Expected route param 42, got: %q", gotID)
	}
}

// Router kayıt sırasına göre ilk eşleşen route'u kullanır: literal path'ler
// {id} pattern'lerinden önce kayıtlıysa param route'una düşmez.
func TestRouter_LiteralBeforeParam(t *testing.T) {
	r := New()

	var hit string
	r.GET("/api/payments/my-payments", func(w http.ResponseWriter, req *request.Request) {
		hit = "literal"
		w.WriteHeader(http.StatusOK)
	})
	r.GET("/api/payments/{id}", func(w http.ResponseWriter, req *request.Request) {
		hit = "param"
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/payments/my-payments", nil))
	if hit != "literal" {
		t.Errorf("Expected literal route to win, got: %q", hit)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/payments/42", nil))
	if hit != "param" {
		t.Errorf("Expected param route for numeric path, got: %q", hit)
	}
}

func TestRouter_MethodAndNotFound(t *testing.T) {
	r := New()
	r.POST("/api/participations/pay-final", func(w http.ResponseWriter, req *request.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/participations/pay-final", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for wrong method, got: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/participations/pay-final", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got: %d", rec.Code)
	}
}
