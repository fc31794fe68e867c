// -----------------------------------------------------------------------------
// Sync Queue Driver
// -----------------------------------------------------------------------------
// Job'ları kuyruklamak yerine hemen çalıştıran driver. Development ve test
// ortamları içindir; Pop/Delete/Release no-op'tur.
// -----------------------------------------------------------------------------

package queue

import (
	"log"
	"time"
)

// SyncQueue, senkron queue implementasyonudur.
type SyncQueue struct {
	logger *log.Logger
}

// NewSyncQueue, yeni bir sync queue oluşturur.
func NewSyncQueue(logger *log.Logger) *SyncQueue {
	return &SyncQueue{
		logger: logger,
	}
}

// Push, job'ı hemen çalıştırır. Hata durumunda Failed handler'ı çağrılır.
func (s *SyncQueue) Push(job Job, queue string) error {
	s.logger.Printf("⚡ Sync executing job: %s (queue: %s)", job.GetID(), queue)

	if err := job.Handle(); err != nil {
		s.logger.Printf("❌ Job failed: %s (error: %v)", job.GetID(), err)
		if failedErr := job.Failed(err); failedErr != nil {
			s.logger.Printf("❌ Failed handler error: %s (error: %v)", job.GetID(), failedErr)
		}
		return err
	}

	s.logger.Printf("✅ Job completed: %s", job.GetID())
	return nil
}

// Later, gecikmeyi bekleyip job'ı çalıştırır.
func (s *SyncQueue) Later(delay time.Duration, job Job, queue string) error {
	if delay > 0 {
		s.logger.Printf("⏱️  Waiting %v before executing job: %s", delay, job.GetID())
		time.Sleep(delay)
	}
	return s.Push(job, queue)
}

// Pop, sync driver'da her zaman boş döner; job'lar Push anında işlenmiştir.
func (s *SyncQueue) Pop(queue string) (Job, error) {
	return nil, nil
}

func (s *SyncQueue) Delete(queue string, job Job) error {
	return nil
}

func (s *SyncQueue) Release(queue string, job Job, delay time.Duration) error {
	return nil
}

func (s *SyncQueue) Size(queue string) (int64, error) {
	return 0, nil
}
