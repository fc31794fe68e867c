// -----------------------------------------------------------------------------
// SMTP Mailer Driver
// -----------------------------------------------------------------------------
// SMTP protokolü üzerinden email gönderir. Gmail, Mailhog (development),
// SendGrid, SES gibi standart SMTP sunucularıyla çalışır.
//
//	config := &mail.SMTPConfig{
//	    Host:     "localhost",
//	    Port:     1025,
//	    From:     mail.Address{Email: "noreply@groupbuy.local", Name: "GroupBuy"},
//	}
//	mailer := mail.NewSMTPMailer(config, logger)
// -----------------------------------------------------------------------------

package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SMTPConfig, SMTP bağlantı ayarlarını içerir.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     Address       // Varsayılan gönderici adresi
	UseTLS   bool          // 587 portu için true
	Timeout  time.Duration // Varsayılan: 30s
}

// SMTPMailer, SMTP ile email gönderen driver.
type SMTPMailer struct {
	*BaseMailer
	config *SMTPConfig
}

// NewSMTPMailer, yeni bir SMTP mailer oluşturur.
func NewSMTPMailer(config *SMTPConfig, logger Logger) *SMTPMailer {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &SMTPMailer{
		BaseMailer: NewBaseMailer(logger),
		config:     config,
	}
}

// Send, email'i SMTP üzerinden gönderir. From adresi boşsa config'deki
// varsayılan gönderici kullanılır.
func (m *SMTPMailer) Send(message *Message) error {
	if message.GetFrom().Email == "" {
		message.From(m.config.From.Email, m.config.From.Name)
	}

	if err := m.ValidateMessage(message); err != nil {
		return fmt.Errorf("message validation failed: %w", err)
	}

	m.LogSending(message)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	recipients := m.collectRecipients(message)

	emailBody, err := m.buildEmail(message)
	if err != nil {
		m.LogError(message, err)
		return fmt.Errorf("failed to build email: %w", err)
	}

	if err := smtp.SendMail(addr, auth, message.GetFrom().Email, recipients, emailBody); err != nil {
		m.LogError(message, err)
		return fmt.Errorf("smtp send failed: %w", err)
	}

	m.LogSuccess(message)
	return nil
}

// collectRecipients, To, Cc ve Bcc adreslerini tek listede toplar.
func (m *SMTPMailer) collectRecipients(message *Message) []string {
	recipients := make([]string, 0)

	for _, to := range message.GetTo() {
		recipients = append(recipients, to.Email)
	}

	for _, cc := range message.GetCc() {
		recipients = append(recipients, cc.Email)
	}

	for _, bcc := range message.GetBcc() {
		recipients = append(recipients, bcc.Email)
	}

	return recipients
}

// buildEmail, email'i MIME formatında oluşturur.
func (m *SMTPMailer) buildEmail(message *Message) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s\r\n", message.GetFrom().String()))

	toAddrs := make([]string, len(message.GetTo()))
	for i, to := range message.GetTo() {
		toAddrs[i] = to.String()
	}
	buf.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(toAddrs, ", ")))

	if len(message.GetCc()) > 0 {
		ccAddrs := make([]string, len(message.GetCc()))
		for i, cc := range message.GetCc() {
			ccAddrs[i] = cc.String()
		}
		buf.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(ccAddrs, ", ")))
	}

	if message.GetReplyTo() != nil {
		buf.WriteString(fmt.Sprintf("Reply-To: %s\r\n", message.GetReplyTo().String()))
	}

	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", message.GetSubject()))
	buf.WriteString(fmt.Sprintf("Date: %s\r\n", message.GetDate().Format(time.RFC1123Z)))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(message.GetAttachments()) > 0 {
		return m.buildMultipartWithAttachments(&buf, message)
	}

	return m.buildMultipartAlternative(&buf, message)
}

// buildMultipartAlternative, plain text ve HTML gövdeli email oluşturur.
func (m *SMTPMailer) buildMultipartAlternative(buf *bytes.Buffer, message *Message) ([]byte, error) {
	writer := multipart.NewWriter(buf)
	boundary := writer.Boundary()

	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary))

	if message.GetBody() != "" {
		part, _ := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type": []string{"text/plain; charset=UTF-8"},
		})
		part.Write([]byte(message.GetBody()))
	}

	if message.GetHtmlBody() != "" {
		part, _ := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type": []string{"text/html; charset=UTF-8"},
		})
		part.Write([]byte(message.GetHtmlBody()))
	}

	writer.Close()

	return buf.Bytes(), nil
}

// buildMultipartWithAttachments, ek dosyalı email oluşturur
// (multipart/mixed içinde multipart/alternative).
func (m *SMTPMailer) buildMultipartWithAttachments(buf *bytes.Buffer, message *Message) ([]byte, error) {
	writer := multipart.NewWriter(buf)
	boundary := writer.Boundary()

	buf.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary))

	if message.GetBody() != "" || message.GetHtmlBody() != "" {
		contentWriter := multipart.NewWriter(buf)
		contentBoundary := contentWriter.Boundary()

		part, _ := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type": []string{fmt.Sprintf("multipart/alternative; boundary=%s", contentBoundary)},
		})

		if message.GetBody() != "" {
			textPart, _ := contentWriter.CreatePart(textproto.MIMEHeader{
				"Content-Type": []string{"text/plain; charset=UTF-8"},
			})
			textPart.Write([]byte(message.GetBody()))
		}

		if message.GetHtmlBody() != "" {
			htmlPart, _ := contentWriter.CreatePart(textproto.MIMEHeader{
				"Content-Type": []string{"text/html; charset=UTF-8"},
			})
			htmlPart.Write([]byte(message.GetHtmlBody()))
		}

		contentWriter.Close()
		part.Write([]byte("\r\n"))
	}

	for _, filePath := range message.GetAttachments() {
		if err := m.addAttachment(writer, filePath); err != nil {
			return nil, fmt.Errorf("failed to attach file %s: %w", filePath, err)
		}
	}

	writer.Close()

	return buf.Bytes(), nil
}

// addAttachment, dosyayı base64 encode ederek ek olarak yazar.
func (m *SMTPMailer) addAttachment(writer *multipart.Writer, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	fileName := filepath.Base(filePath)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              []string{"application/octet-stream"},
		"Content-Disposition":       []string{fmt.Sprintf("attachment; filename=\"%s\"", fileName)},
		"Content-Transfer-Encoding": []string{"base64"},
	})
	if err != nil {
		return err
	}

	// RFC 2045: satır uzunluğu en fazla 76 karakter
	encoded := base64.StdEncoding.EncodeToString(fileData)
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		part.Write([]byte(encoded[i:end] + "\r\n"))
	}

	return nil
}
