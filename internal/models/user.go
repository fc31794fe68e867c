// -----------------------------------------------------------------------------
// User Model
// -----------------------------------------------------------------------------
// Kayıtlı kullanıcıları temsil eder. Banlanan kullanıcılar yeni kampanyalara
// katılamaz; mevcut katılımları etkilenmez.
// -----------------------------------------------------------------------------

package models

import (
	"time"

	"github.com/biyonik/groupbuy-api/pkg/auth"
)

// Kullanıcı rolleri
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User, users tablosunu temsil eden modeldir.
type User struct {
	BaseModel
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"` // json:"-" = API'ye göndermez
	Role      string     `json:"role" db:"role"`
	IsBanned  bool       `json:"is_banned" db:"is_banned"`
	BannedAt  *time.Time `json:"banned_at,omitempty" db:"banned_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// GetID, auth.User interface implementasyonu için.
func (u *User) GetID() int64 {
	return u.ID
}

// GetEmail, auth.User interface implementasyonu için.
func (u *User) GetEmail() string {
	return u.Email
}

// GetRole, auth.User interface implementasyonu için.
func (u *User) GetRole() string {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}

// IsAdmin, kullanıcının admin olup olmadığını kontrol eder.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CheckPassword, verilen şifreyi kullanıcının hash'lenmiş şifresi ile karşılaştırır.
func (u *User) CheckPassword(password string) bool {
	return auth.Check(password, u.Password)
}
