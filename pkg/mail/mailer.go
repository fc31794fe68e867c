// -----------------------------------------------------------------------------
// Mail Package
// -----------------------------------------------------------------------------
// Email gönderimi için Laravel Mail Facade'ine benzer bir interface sağlar.
// SMTP ve log driver'ları vardır; driver seçimi config üzerinden yapılır.
//
//	mailer := mail.NewSMTPMailer(config, logger)
//	message := mail.NewMessage().
//	    From("noreply@groupbuy.local", "GroupBuy").
//	    To("user@example.com", "").
//	    Subject("Kampanya başarılı!").
//	    Body("Kampanyanız hedefe ulaştı.")
//	err := mailer.Send(message)
// -----------------------------------------------------------------------------

package mail

import (
	"fmt"
	"strings"
)

// Mailer, email gönderim interface'i. Farklı driver'lar (SMTP, log,
// üçüncü parti servisler) bu interface'i implement eder.
type Mailer interface {
	Send(message *Message) error
}

// Logger, dependency injection için minimal log interface'i.
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// BaseMailer, driver implementasyonlarının embed ettiği ortak yapıdır.
type BaseMailer struct {
	logger Logger
}

// NewBaseMailer, yeni bir BaseMailer oluşturur.
func NewBaseMailer(logger Logger) *BaseMailer {
	return &BaseMailer{
		logger: logger,
	}
}

// ValidateMessage, mesajı validate eder.
func (m *BaseMailer) ValidateMessage(message *Message) error {
	return message.Validate()
}

// LogSending, gönderim işlemini loglar.
func (m *BaseMailer) LogSending(message *Message) {
	m.logger.Printf("📧 Sending email to: %s", message.GetTo()[0].Email)
	m.logger.Printf("   Subject: %s", message.GetSubject())
	m.logger.Printf("   From: %s", message.GetFrom().String())
}

// LogSuccess, başarılı gönderimi loglar.
func (m *BaseMailer) LogSuccess(message *Message) {
	m.logger.Printf("✅ Email sent successfully to: %s", message.GetTo()[0].Email)
}

// LogError, gönderim hatasını loglar.
func (m *BaseMailer) LogError(message *Message, err error) {
	m.logger.Printf("❌ Email send failed to: %s - Error: %v", message.GetTo()[0].Email, err)
}

// LogMailer, email'leri göndermek yerine loglara yazan driver. Development
// ve test ortamları içindir.
type LogMailer struct {
	*BaseMailer
}

// NewLogMailer, yeni bir LogMailer oluşturur.
func NewLogMailer(logger Logger) *LogMailer {
	return &LogMailer{
		BaseMailer: NewBaseMailer(logger),
	}
}

// Send, email'i loglara yazar; gerçek gönderim yapılmaz.
func (m *LogMailer) Send(message *Message) error {
	if err := m.ValidateMessage(message); err != nil {
		return fmt.Errorf("message validation failed: %w", err)
	}

	m.logger.Println("\n" + strings.Repeat("=", 70))
	m.logger.Println("📧 EMAIL (LOG DRIVER - NOT ACTUALLY SENT)")
	m.logger.Println(strings.Repeat("=", 70))
	m.logger.Printf("From: %s", message.GetFrom().String())

	for _, to := range message.GetTo() {
		m.logger.Printf("To: %s", to.String())
	}

	for _, cc := range message.GetCc() {
		m.logger.Printf("Cc: %s", cc.String())
	}

	m.logger.Printf("Subject: %s", message.GetSubject())
	m.logger.Println("---")

	if message.GetBody() != "" {
		m.logger.Println(message.GetBody())
	}

	if message.GetHtmlBody() != "" {
		m.logger.Println(message.GetHtmlBody())
	}

	if len(message.GetAttachments()) > 0 {
		m.logger.Println("Attachments:")
		for _, att := range message.GetAttachments() {
			m.logger.Printf("  - %s", att)
		}
	}

	m.logger.Println(strings.Repeat("=", 70) + "\n")

	return nil
}
