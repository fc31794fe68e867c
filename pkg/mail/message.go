// -----------------------------------------------------------------------------
// Email Message Builder
// -----------------------------------------------------------------------------
// Fluent API ile email mesajı oluşturur:
//
//	msg := mail.NewMessage().
//	    From("noreply@groupbuy.local", "GroupBuy").
//	    To("user@example.com", "").
//	    Subject("Depozito iadesi").
//	    Body("Depozitonuz iade edildi.")
// -----------------------------------------------------------------------------

package mail

import (
	"fmt"
	"time"
)

// Address, email adresi ve opsiyonel isimden oluşur.
type Address struct {
	Email string
	Name  string
}

// String, adresi "Name <email@example.com>" formatında döndürür.
func (a Address) String() string {
	if a.Name != "" {
		return fmt.Sprintf("%s <%s>", a.Name, a.Email)
	}
	return a.Email
}

// Message, gönderilecek email mesajını temsil eder. Alanlar fluent
// setter'larla doldurulur.
type Message struct {
	from        Address
	to          []Address
	cc          []Address
	bcc         []Address
	replyTo     *Address
	subject     string
	body        string
	htmlBody    string
	attachments []string
	date        time.Time
}

// NewMessage, yeni bir Message oluşturur.
func NewMessage() *Message {
	return &Message{
		date: time.Now(),
	}
}

// From, gönderici adresini ayarlar (method chaining).
func (m *Message) From(email string, name string) *Message {
	m.from = Address{Email: email, Name: name}
	return m
}

// To, alıcı adresi ekler. İsim opsiyoneldir, boş string geçilebilir.
func (m *Message) To(email string, name string) *Message {
	m.to = append(m.to, Address{Email: email, Name: name})
	return m
}

// Cc, CC alıcısı ekler.
func (m *Message) Cc(email string, name string) *Message {
	m.cc = append(m.cc, Address{Email: email, Name: name})
	return m
}

// Bcc, BCC alıcısı ekler.
func (m *Message) Bcc(email string, name string) *Message {
	m.bcc = append(m.bcc, Address{Email: email, Name: name})
	return m
}

// ReplyTo, yanıt adresini ayarlar.
func (m *Message) ReplyTo(email string, name string) *Message {
	m.replyTo = &Address{Email: email, Name: name}
	return m
}

// Subject, email konusunu ayarlar.
func (m *Message) Subject(subject string) *Message {
	m.subject = subject
	return m
}

// Body, plain text gövdeyi ayarlar.
func (m *Message) Body(body string) *Message {
	m.body = body
	return m
}

// Html, HTML gövdeyi ayarlar. XSS koruması yapılmaz; sadece güvenilir
// içerik kullanılmalıdır.
func (m *Message) Html(html string) *Message {
	m.htmlBody = html
	return m
}

// Attach, dosya yolunu ek olarak ekler.
func (m *Message) Attach(filePath string) *Message {
	m.attachments = append(m.attachments, filePath)
	return m
}

// Validate, mesajın gönderilebilir olduğunu kontrol eder: From, en az bir
// To, Subject ve bir gövde (plain veya HTML) zorunludur.
func (m *Message) Validate() error {
	if m.from.Email == "" {
		return fmt.Errorf("sender address is required")
	}

	if len(m.to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	if m.subject == "" {
		return fmt.Errorf("subject is required")
	}

	if m.body == "" && m.htmlBody == "" {
		return fmt.Errorf("body or html body is required")
	}

	return nil
}

func (m *Message) GetFrom() Address         { return m.from }
func (m *Message) GetTo() []Address         { return m.to }
func (m *Message) GetCc() []Address         { return m.cc }
func (m *Message) GetBcc() []Address        { return m.bcc }
func (m *Message) GetReplyTo() *Address     { return m.replyTo }
func (m *Message) GetSubject() string       { return m.subject }
func (m *Message) GetBody() string          { return m.body }
func (m *Message) GetHtmlBody() string      { return m.htmlBody }
func (m *Message) GetAttachments() []string { return m.attachments }
func (m *Message) GetDate() time.Time       { return m.date }
