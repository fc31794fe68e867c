// -----------------------------------------------------------------------------
// GroupBuy-Go API Server
// -----------------------------------------------------------------------------
// Uygulamanın giriş noktası. Konfigürasyonu yükler, altyapı bağlantılarını
// (MySQL, Redis) kurar, servis katmanını bağlar, HTTP route'larını tanımlar
// ve graceful shutdown ile sunucuyu çalıştırır.
//
// Başlatma sırası:
//  1. Config + logger
//  2. MySQL + Redis bağlantıları
//  3. Cache, queue, mail, event altyapısı
//  4. Repository + servis katmanı
//  5. Refund worker + sweep scheduler
//  6. Router + HTTP server
// -----------------------------------------------------------------------------

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biyonik/groupbuy-api/internal/config"
	"github.com/biyonik/groupbuy-api/internal/controllers"
	"github.com/biyonik/groupbuy-api/internal/gateway"
	"github.com/biyonik/groupbuy-api/internal/jobs"
	"github.com/biyonik/groupbuy-api/internal/middleware"
	"github.com/biyonik/groupbuy-api/internal/notifications"
	"github.com/biyonik/groupbuy-api/internal/repositories"
	"github.com/biyonik/groupbuy-api/internal/router"
	"github.com/biyonik/groupbuy-api/internal/services"
	"github.com/biyonik/groupbuy-api/internal/vouchers"
	"github.com/biyonik/groupbuy-api/pkg/auth"
	"github.com/biyonik/groupbuy-api/pkg/cache"
	"github.com/biyonik/groupbuy-api/pkg/database"
	"github.com/biyonik/groupbuy-api/pkg/events"
	"github.com/biyonik/groupbuy-api/pkg/mail"
	"github.com/biyonik/groupbuy-api/pkg/queue"
)

func main() {
	logger := log.New(os.Stdout, "[GroupBuy] ", log.LstdFlags)

	// 1. Config
	cfg := config.Load()
	logger.Printf("🔄 %s başlatılıyor (env: %s)", cfg.App.Name, cfg.App.Env)

	// 2. MySQL
	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		logger.Fatalf("❌ Veritabanı bağlantısı kurulamadı: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	logger.Println("✅ MySQL bağlantısı başarılı")

	// 3. Redis (cache veya queue redis driver kullanıyorsa)
	var redisClient *database.RedisClient
	if cfg.Cache.Driver == "redis" || cfg.Queue.Driver == "redis" {
		redisConfig := database.DefaultRedisConfig()
		redisConfig.Host = cfg.Redis.Host
		redisConfig.Port = cfg.Redis.Port
		redisConfig.Password = cfg.Redis.Password
		redisConfig.DB = cfg.Redis.DB

		redisClient, err = database.NewRedisClient(redisConfig, logger)
		if err != nil {
			logger.Fatalf("❌ Redis bağlantısı kurulamadı: %v", err)
		}
		defer redisClient.Close()
	}

	// 4. Cache
	var cacheStore cache.Cache
	if cfg.Cache.Driver == "redis" {
		cacheStore = cache.NewRedisCache(redisClient.Client(), logger, cfg.Cache.Prefix)
	} else {
		cacheStore = cache.NewMemoryCache(logger)
	}

	// 5. Queue
	var jobQueue queue.Queue
	if cfg.Queue.Driver == "redis" {
		jobQueue = queue.NewRedisQueue(redisClient.Client(), logger, cfg.Cache.Prefix)
	} else {
		jobQueue = queue.NewSyncQueue(logger)
	}

	// 6. Mail
	var mailer mail.Mailer
	if cfg.Mail.Driver == "smtp" {
		mailer = mail.NewSMTPMailer(&mail.SMTPConfig{
			Host: cfg.Mail.Host,
			Port: cfg.Mail.Port,
			From: mail.Address{Email: cfg.Mail.FromAddress, Name: cfg.App.Name},
		}, logger)
	} else {
		mailer = mail.NewLogMailer(logger)
	}

	// 7. Event dispatcher + bildirimler
	dispatcher := events.NewDispatcher(logger)
	dispatcher.Listen(events.EventUserRegistered, events.ListenerFunc(func(e events.Event) error {
		logger.Printf("📢 Yeni kullanıcı kaydı: %v", e.Payload())
		return nil
	}))

	notifier := notifications.NewPublisher()
	notifier.Attach(notifications.NewEmailObserver(&plainMailer{
		mailer: mailer,
		from:   cfg.Mail.FromAddress,
		name:   cfg.App.Name,
	}))

	// 8. JWT config
	jwtConfig := &auth.JWTConfig{
		Secret:           cfg.JWT.Secret,
		Issuer:           cfg.App.Name,
		ExpirationTime:   cfg.JWT.Expiration,
		RefreshExpiresIn: cfg.JWT.RefreshExpiration,
	}

	// 9. Repository katmanı
	campaignRepo := repositories.NewCampaignRepository(db)
	participationRepo := repositories.NewParticipationRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// 10. Ödeme sağlayıcı: sandbox gateway, network hatalarında retry sarmalı
	paymentGateway := gateway.NewRetryingGateway(
		gateway.NewSandboxGateway(),
		cfg.Gateway.MaxRetries,
		cfg.Gateway.RetryBackoff,
	)

	// 11. Servis katmanı
	ledger := services.NewCampaignLedger(campaignRepo)
	participationManager := services.NewParticipationManager(
		ledger,
		campaignRepo,
		participationRepo,
		paymentRepo,
		userRepo,
		paymentGateway,
		jobQueue,
		notifier,
		vouchers.NewFactory(),
		logger,
	)
	campaignService := services.NewCampaignService(campaignRepo, ledger, participationManager, cacheStore, logger)
	userService := services.NewUserService(userRepo, jwtConfig, dispatcher, logger)
	adminService := services.NewAdminService(ledger, campaignRepo, userRepo, paymentRepo, participationManager, jobQueue, notifier, logger)

	// 12. Refund worker: kuyruğa düşen iade job'larını işler
	queue.RegisterJob(jobs.RefundJobType, func() queue.Job {
		return jobs.NewRefundDepositJob(paymentGateway, paymentRepo)
	})

	worker := queue.NewWorker(jobQueue, logger).
		SetMaxRetries(cfg.Queue.MaxAttempts).
		SetRetryDelay(time.Duration(cfg.Queue.RetryAfter) * time.Second)
	go worker.Work("refunds")

	// 13. Sweep scheduler: süresi dolan kampanyaları sonuçlandırır
	sweep := services.NewSweepScheduler(
		ledger,
		campaignRepo,
		participationManager,
		notifier,
		logger,
		cfg.Sweep.Interval,
	).SetBatchLimit(cfg.Sweep.BatchLimit)
	sweep.Start()

	// 14. Controller'lar
	authController := controllers.NewAuthController(userService)
	campaignController := controllers.NewCampaignController(campaignService)
	participationController := controllers.NewParticipationController(participationManager)
	adminController := controllers.NewAdminController(adminService)

	// 15. Router
	r := router.New()
	r.Use(middleware.Logging)
	r.Use(middleware.PanicRecovery(logger))
	r.Use(middleware.CORSMiddleware(cfg.App.URL))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds))
	}

	authMW := middleware.AuthWithConfig(jwtConfig)

	// Public routes
	r.POST("/api/auth/register", authController.Register)
	r.POST("/api/auth/login", authController.Login)
	r.GET("/api/campaigns", campaignController.Index)
	r.GET("/api/campaigns/{id}", campaignController.Show)
	r.GET("/api/campaigns/{id}/stats", campaignController.Stats)

	// Authenticated routes
	r.GET("/api/auth/me", authController.Me).Middleware(authMW)

	r.POST("/api/campaigns", campaignController.Create).Middleware(authMW)
	r.PUT("/api/campaigns/{id}", campaignController.Update).Middleware(authMW)
	r.POST("/api/campaigns/{id}/cancel", campaignController.Cancel).Middleware(authMW)
	r.POST("/api/campaigns/{id}/finalize", campaignController.Finalize).Middleware(authMW)
	r.POST("/api/campaigns/{id}/activate", campaignController.Activate).Middleware(authMW)
	r.GET("/api/my/campaigns", campaignController.Mine).Middleware(authMW)

	r.POST("/api/campaigns/{id}/join", participationController.Join).Middleware(authMW)
	r.POST("/api/participations/join", participationController.JoinByBody).Middleware(authMW)
	r.GET("/api/campaigns/{id}/participants", participationController.Participants).Middleware(authMW)
	r.DELETE("/api/participations/{id}", participationController.Leave).Middleware(authMW)
	r.POST("/api/participations/{id}/leave", participationController.Leave).Middleware(authMW)
	r.POST("/api/participations/{id}/pay", participationController.PayFinal).Middleware(authMW)
	r.POST("/api/participations/pay-final", participationController.PayFinalByBody).Middleware(authMW)
	r.GET("/api/participations/my-participations", participationController.Mine).Middleware(authMW)
	r.GET("/api/participations/{id}", participationController.Show).Middleware(authMW)
	r.GET("/api/participations/{id}/voucher", participationController.Voucher).Middleware(authMW)
	r.GET("/api/campaigns/{id}/payments", participationController.CampaignPayments).Middleware(authMW)
	// Literal path'ler {id} pattern'lerinden önce kayıtlıdır; router ilk
	// eşleşen route'u kullanır
	r.GET("/api/payments/my-payments", participationController.Payments).Middleware(authMW)
	r.GET("/api/payments/{id}", participationController.PaymentShow).Middleware(authMW)
	r.GET("/api/my/participations", participationController.Mine).Middleware(authMW)
	r.GET("/api/my/payments", participationController.Payments).Middleware(authMW)

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(authMW)
	admin.Use(middleware.Admin())
	admin.GET("/dashboard", adminController.Dashboard)
	admin.GET("/users", adminController.ListUsers)
	admin.POST("/users/{id}/ban", adminController.BanUser)
	admin.POST("/users/{id}/unban", adminController.UnbanUser)
	admin.POST("/campaigns/{id}/cancel", adminController.ForceCancel)
	admin.GET("/payments", adminController.ListPayments)

	// 16. HTTP server + graceful shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("✅ Server %s portunda dinliyor", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("❌ Server hatası: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("🛑 Kapatma sinyali alındı, graceful shutdown başlıyor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("❌ Server shutdown hatası: %v", err)
	}

	sweep.Stop()
	worker.Stop()
	middleware.StopAllLimiters()

	logger.Println("✅ Server kapatıldı")
}

// plainMailer, pkg/mail Mailer'ını notifications katmanının beklediği düz
// metin arayüzüne uyarlar.
type plainMailer struct {
	mailer mail.Mailer
	from   string
	name   string
}

func (m *plainMailer) SendPlain(to, subject, body string) error {
	message := mail.NewMessage().
		From(m.from, m.name).
		To(to, "").
		Subject(subject).
		Body(body)

	return m.mailer.Send(message)
}
