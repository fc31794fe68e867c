// -----------------------------------------------------------------------------
// Queue Worker
// -----------------------------------------------------------------------------
// Job'ları kuyruktan çekip işleyen worker. Birden fazla kuyruğu aynı anda
// dinleyebilir; her kuyruk kendi goroutine'inde işlenir. Başarısız job'lar
// retryDelay gecikmesiyle tekrar denenir, max attempt aşıldığında Failed
// handler çağrılıp job kuyruktan silinir.
//
//	worker := queue.NewWorker(q, logger).SetMaxRetries(3)
//	go worker.Work("refunds")
//	...
//	worker.Stop()
// -----------------------------------------------------------------------------

package queue

import (
	"log"
	"strings"
	"sync"
	"time"
)

// Worker, queue job'larını işleyen yapıdır.
type Worker struct {
	queue      Queue
	logger     *log.Logger
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	maxRetries int
	retryDelay time.Duration
}

// NewWorker, yeni bir Worker oluşturur.
func NewWorker(queue Queue, logger *log.Logger) *Worker {
	return &Worker{
		queue:      queue,
		logger:     logger,
		stopChan:   make(chan struct{}),
		maxRetries: 3,
		retryDelay: 90 * time.Second,
	}
}

// SetMaxRetries, maksimum retry sayısını ayarlar (method chaining).
func (w *Worker) SetMaxRetries(max int) *Worker {
	w.maxRetries = max
	return w
}

// SetRetryDelay, retry gecikme süresini ayarlar (method chaining).
func (w *Worker) SetRetryDelay(delay time.Duration) *Worker {
	w.retryDelay = delay
	return w
}

// Work, verilen kuyrukları dinlemeye başlar. Blocking'dir; goroutine'de
// çalıştırılmalıdır. Stop çağrılana kadar döner.
func (w *Worker) Work(queues ...string) {
	if len(queues) == 0 {
		queues = []string{"default"}
	}

	w.logger.Println("\n" + strings.Repeat("=", 70))
	w.logger.Println("🚀 Queue Worker Started")
	w.logger.Printf("📋 Queues: %v", queues)
	w.logger.Printf("🔄 Max Retries: %d", w.maxRetries)
	w.logger.Printf("⏱️  Retry Delay: %v", w.retryDelay)
	w.logger.Println(strings.Repeat("=", 70))

	for _, queueName := range queues {
		w.wg.Add(1)
		go w.processQueue(queueName)
	}

	w.wg.Wait()
	w.logger.Println("✅ Queue Worker Stopped")
}

func (w *Worker) processQueue(queueName string) {
	defer w.wg.Done()

	w.logger.Printf("✅ Worker started for queue: %s", queueName)

	for {
		select {
		case <-w.stopChan:
			w.logger.Printf("🛑 Worker stopping for queue: %s", queueName)
			return
		default:
			job, err := w.queue.Pop(queueName)
			if err != nil {
				w.logger.Printf("❌ Job pop hatası [%s]: %v", queueName, err)
				time.Sleep(1 * time.Second)
				continue
			}

			if job == nil {
				// Kuyruk boş; hot-loop'u önle
				time.Sleep(500 * time.Millisecond)
				continue
			}

			w.processJob(queueName, job)
		}
	}
}

func (w *Worker) processJob(queueName string, job Job) {
	startTime := time.Now()

	w.logger.Printf("🔄 Processing job: %s (queue: %s, attempt: %d/%d)",
		job.GetID(), queueName, job.GetAttempts()+1, job.GetMaxAttempts())

	err := job.Handle()
	if err == nil {
		w.logger.Printf("✅ Job completed: %s (queue: %s, duration: %v)",
			job.GetID(), queueName, time.Since(startTime))

		if delErr := w.queue.Delete(queueName, job); delErr != nil {
			w.logger.Printf("⚠️  Job delete hatası: %v", delErr)
		}
		return
	}

	w.logger.Printf("❌ Job failed: %s (queue: %s, error: %v)",
		job.GetID(), queueName, err)

	if job.GetAttempts()+1 >= job.GetMaxAttempts() {
		w.logger.Printf("⚠️  Job max attempts reached: %s (queue: %s)",
			job.GetID(), queueName)

		if failErr := job.Failed(err); failErr != nil {
			w.logger.Printf("⚠️  Job failed handler hatası: %v", failErr)
		}

		if delErr := w.queue.Delete(queueName, job); delErr != nil {
			w.logger.Printf("⚠️  Job delete hatası: %v", delErr)
		}
		return
	}

	w.logger.Printf("🔄 Job retrying: %s (queue: %s, next attempt: %d/%d)",
		job.GetID(), queueName, job.GetAttempts()+2, job.GetMaxAttempts())

	if relErr := w.queue.Release(queueName, job, w.retryDelay); relErr != nil {
		w.logger.Printf("❌ Job release hatası: %v", relErr)
	}
}

// Stop, worker'ı gracefully durdurur; işlenmekte olan job'lar tamamlanır.
// Birden fazla kez çağrılması güvenlidir.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Println("🛑 Stopping queue worker...")
		close(w.stopChan)
	})
}

// Stats, verilen kuyrukların bekleyen job sayılarını döndürür.
func (w *Worker) Stats(queues ...string) map[string]interface{} {
	stats := make(map[string]interface{})

	for _, queueName := range queues {
		size, err := w.queue.Size(queueName)
		if err != nil {
			stats[queueName] = map[string]interface{}{
				"error": err.Error(),
			}
			continue
		}

		stats[queueName] = map[string]interface{}{
			"size": size,
		}
	}

	return stats
}
