// internal/models/base_model.go
//
// Tüm modellerin embed ettiği ortak alanlar (ID, CreatedAt, UpdatedAt)
// ve timestamp davranışları. Laravel'deki base Model'in Go karşılığıdır.
//
//	type Campaign struct {
//	    models.BaseModel
//	    Title string
//	}

package models

import "time"

// BaseModel, tüm kayıt tiplerinin gövdesini oluşturur; primary key ve
// timestamp yönetimi dahildir.
type BaseModel struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Initialize, CreatedAt ve UpdatedAt alanlarını şu anki zamana ayarlar.
// Yeni kayıt insert edilmeden önce çağrılır.
func (m *BaseModel) Initialize() {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch, UpdatedAt alanını şu anki zamana günceller.
func (m *BaseModel) Touch() {
	m.UpdatedAt = time.Now()
}
