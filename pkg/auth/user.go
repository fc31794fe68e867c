package auth

// User, auth katmanından dönen kullanıcıyı soyutlar. Farklı user model'leri
// bu interface üzerinden middleware ve controller'larla çalışır.
type User interface {
	GetID() int64
	GetEmail() string
	GetRole() string
}

// AuthenticatedUser, JWT claims'lerinden üretilen basit User
// implementasyonudur. Database'e gitmeden request context'inde taşınır.
type AuthenticatedUser struct {
	ID    int64
	Email string
	Role  string
}

func (u *AuthenticatedUser) GetID() int64 {
	return u.ID
}

func (u *AuthenticatedUser) GetEmail() string {
	return u.Email
}

func (u *AuthenticatedUser) GetRole() string {
	return u.Role
}
