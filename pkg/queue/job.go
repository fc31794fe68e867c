// -----------------------------------------------------------------------------
// Job Interface
// -----------------------------------------------------------------------------
// Kuyrukta işlenen job'ların sözleşmesi. Gerçek job'lar BaseJob'ı embed edip
// yalnızca Handle() ve Failed() implement eder; serialization GetPayload /
// SetPayload üzerinden JSON ile yapılır.
// -----------------------------------------------------------------------------

package queue

import (
	"encoding/json"
	"time"
)

// Job, queue sistemindeki tüm job'ların implement ettiği interface'dir.
type Job interface {
	// Handle, job'ın asıl işini yapar. Hata dönerse worker retry eder.
	Handle() error

	// Failed, tüm denemeler tükendiğinde çağrılır.
	Failed(err error) error

	// GetPayload, job'ı JSON'a serialize eder.
	GetPayload() ([]byte, error)

	// SetPayload, JSON'dan job'ı doldurur.
	SetPayload(data []byte) error

	GetID() string
	SetID(id string)
	GetAttempts() int
	SetAttempts(attempts int)
	GetQueue() string
	SetQueue(queue string)
	GetMaxAttempts() int
}

// BaseJob, job metadata'sını taşıyan gömülebilir temel yapıdır.
type BaseJob struct {
	ID          string `json:"id"`
	Queue       string `json:"queue"`
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"max_attempts"`
}

func (b *BaseJob) GetID() string {
	return b.ID
}

func (b *BaseJob) SetID(id string) {
	b.ID = id
}

func (b *BaseJob) GetAttempts() int {
	return b.Attempts
}

func (b *BaseJob) SetAttempts(attempts int) {
	b.Attempts = attempts
}

func (b *BaseJob) GetQueue() string {
	return b.Queue
}

func (b *BaseJob) SetQueue(queue string) {
	b.Queue = queue
}

func (b *BaseJob) GetMaxAttempts() int {
	if b.MaxAttempts == 0 {
		return 3
	}
	return b.MaxAttempts
}

// JobPayload, kuyrukta saklanan job wrapper'ıdır. Job'ın kendisi Payload
// alanında JSON olarak taşınır; AvailableAt delayed job'lar içindir.
type JobPayload struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Queue       string          `json:"queue"`
	Payload     json.RawMessage `json:"payload"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	CreatedAt   time.Time       `json:"created_at"`
	AvailableAt time.Time       `json:"available_at"`
}
