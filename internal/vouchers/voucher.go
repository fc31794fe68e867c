// -----------------------------------------------------------------------------
// Voucher Factory
// -----------------------------------------------------------------------------
// Kalan ödemesi tamamlanan katılımlar için teslimat voucher'ı üretir.
// Voucher kodu teslim noktasında okutulur; QR görüntüsü API üzerinden
// PNG olarak servis edilir.
// -----------------------------------------------------------------------------

package vouchers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/biyonik/groupbuy-api/internal/models"
)

// QRCodeGenerator, QR üretimini soyutlar. Testlerde stub'lanabilir.
type QRCodeGenerator interface {
	Generate(data string) ([]byte, error)
}

// DefaultQRCodeGenerator, go-qrcode tabanlı implementasyondur.
type DefaultQRCodeGenerator struct{}

func (g *DefaultQRCodeGenerator) Generate(data string) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, 256)
}

// Factory, voucher kodu ve QR görüntüsü üretir.
type Factory struct {
	qrGenerator QRCodeGenerator
	random      io.Reader
}

// NewFactory, varsayılan QR üreticisiyle yeni bir Factory oluşturur.
func NewFactory() *Factory {
	return &Factory{
		qrGenerator: &DefaultQRCodeGenerator{},
		random:      rand.Reader,
	}
}

// NewFactoryWithQRGenerator, özel QR üreticisiyle Factory oluşturur.
func NewFactoryWithQRGenerator(qrGenerator QRCodeGenerator) *Factory {
	return &Factory{
		qrGenerator: qrGenerator,
		random:      rand.Reader,
	}
}

// NewFactoryWithRandom, özel entropi kaynağıyla Factory oluşturur.
// Testlerde kullanılır.
func NewFactoryWithRandom(random io.Reader) *Factory {
	return &Factory{
		qrGenerator: &DefaultQRCodeGenerator{},
		random:      random,
	}
}

// GenerateCode, benzersiz bir voucher kodu üretir.
// Format: GRP-YYYYMMDD-XXXXXXXX
func (f *Factory) GenerateCode() (string, error) {
	dateStr := time.Now().Format("20060102")
	randomBytes := make([]byte, 4)

	if _, err := io.ReadFull(f.random, randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate voucher code: %w", err)
	}

	return fmt.Sprintf("GRP-%s-%s", dateStr, hex.EncodeToString(randomBytes)), nil
}

// BuildQRData, QR içinde taşınacak doğrulama verisini oluşturur.
func (f *Factory) BuildQRData(participation *models.Participation) string {
	return fmt.Sprintf(
		"VOUCHER:%s|CAMPAIGN:%d|USER:%d|PARTICIPATION:%d",
		participation.VoucherCode,
		participation.CampaignID,
		participation.UserID,
		participation.ID,
	)
}

// GenerateImage, voucher için QR görüntüsü (PNG) üretir.
func (f *Factory) GenerateImage(participation *models.Participation) ([]byte, error) {
	if participation.VoucherCode == "" {
		return nil, fmt.Errorf("katılımın voucher kodu yok")
	}

	image, err := f.qrGenerator.Generate(f.BuildQRData(participation))
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return image, nil
}

// Validate, okutulan QR verisinin katılım kaydıyla eşleşip eşleşmediğini
// kontrol eder.
func (f *Factory) Validate(qrData string, participation *models.Participation) bool {
	return qrData == f.BuildQRData(participation)
}
