// -----------------------------------------------------------------------------
// Queue Interface
// -----------------------------------------------------------------------------
// Laravel-style job queue soyutlaması. Driver'lar: Redis (production),
// Sync (development/test). Worker, Pop ile job çeker; başarıda Delete,
// hatada Release ile retry edilir.
// -----------------------------------------------------------------------------

package queue

import (
	"time"
)

// Queue, tüm queue driver'larının ortak interface'idir.
type Queue interface {
	// Push, job'ı hemen kuyruğa ekler.
	//
	//	err := q.Push(refundJob, "refunds")
	Push(job Job, queue string) error

	// Later, job'ı belirtilen gecikme sonrasında işlenmek üzere ekler.
	Later(delay time.Duration, job Job, queue string) error

	// Pop, kuyruktan bir job çeker. Kuyruk boşsa nil döner.
	Pop(queue string) (Job, error)

	// Delete, başarıyla işlenen job'ı kuyruktan kaldırır.
	Delete(queue string, job Job) error

	// Release, başarısız job'ı retry için gecikmeli olarak tekrar ekler.
	Release(queue string, job Job, delay time.Duration) error

	// Size, kuyruktaki bekleyen job sayısını döndürür.
	Size(queue string) (int64, error)
}
