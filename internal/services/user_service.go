// -----------------------------------------------------------------------------
// User Service
// -----------------------------------------------------------------------------
// Kayıt ve login işlemlerini yönetir. Login sonucunda JWT access ve refresh
// token üretilir. Kayıt sonrası user.registered event'i dispatch edilir;
// hoş geldin emaili gibi yan etkiler listener'lar üzerinden çalışır.
// -----------------------------------------------------------------------------

package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/auth"
	"github.com/biyonik/groupbuy-api/pkg/events"
	"github.com/biyonik/groupbuy-api/pkg/validation"
	"github.com/biyonik/groupbuy-api/pkg/validation/types"
)

// ErrInvalidCredentials, login bilgilerinin hatalı olduğunu belirtir (401).
var ErrInvalidCredentials = errors.New("email veya şifre hatalı")

// AuthTokens, başarılı login sonucunu temsil eder.
type AuthTokens struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// UserService, kullanıcı kayıt ve login işlemlerini yöneten servistir.
type UserService struct {
	users      UserStore
	jwtConfig  *auth.JWTConfig
	dispatcher *events.Dispatcher
	logger     *log.Logger
}

// NewUserService, yeni bir UserService oluşturur.
func NewUserService(users UserStore, jwtConfig *auth.JWTConfig, dispatcher *events.Dispatcher, logger *log.Logger) *UserService {
	return &UserService{
		users:      users,
		jwtConfig:  jwtConfig,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Register, yeni bir kullanıcı kaydeder.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	// 1. Input validation
	schema := validation.Make().Shape(map[string]validation.Type{
		"name":     types.String().Required().Min(2).Max(100).Label("İsim"),
		"email":    types.String().Required().Email().Max(190).Label("Email"),
		"password": types.String().Required().Min(8).Max(72).Label("Şifre"),
	})

	result := schema.Validate(map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	})

	if result.HasErrors() {
		for field, errs := range result.Errors() {
			return nil, fmt.Errorf("%w: %s: %s", ErrValidation, field, errs[0])
		}
	}

	// 2. Email benzersiz mi?
	_, err := s.users.FindByEmail(email)
	if err == nil {
		return nil, fmt.Errorf("%w: email: bu email adresi zaten kayıtlı", ErrValidation)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	// 3. Şifreyi hashle ve kaydet
	hashed, err := auth.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	user.Initialize()

	id, err := s.users.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	s.logger.Printf("✅ Yeni kullanıcı kaydı: id=%d email=%s", id, email)

	// 4. Event dispatch (yan etkiler listener'larda)
	if err := s.dispatcher.Dispatch(events.NewUserRegisteredEvent(user)); err != nil {
		s.logger.Printf("⚠️  user.registered event hatası: %v", err)
	}

	return user, nil
}

// Login, email ve şifre ile giriş yapar; JWT token çifti döndürür.
func (s *UserService) Login(email, password string) (*AuthTokens, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.ID, user.Email, user.GetRole(), s.jwtConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	refreshToken, err := auth.GenerateRefreshToken(user.ID, user.Email, s.jwtConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.dispatcher.Dispatch(events.NewUserLoggedInEvent(user)); err != nil {
		s.logger.Printf("⚠️  user.logged.in event hatası: %v", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
