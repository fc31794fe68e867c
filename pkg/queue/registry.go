// -----------------------------------------------------------------------------
// Job Registry
// -----------------------------------------------------------------------------
// Worker'ın kuyruktan çektiği JSON payload'ı doğru job tipine deserialize
// edebilmesi için her job tipi bir factory ile register edilmelidir.
//
//	queue.RegisterJob("*jobs.RefundDepositJob", func() queue.Job {
//	    return jobs.NewRefundDepositJob(gw, payments)
//	})
// -----------------------------------------------------------------------------

package queue

import (
	"fmt"
	"sync"
)

// JobFactory, job instance oluşturan fonksiyon tipidir. Runtime
// bağımlılıkları (gateway, store) closure üzerinden enjekte edilir.
type JobFactory func() Job

// Registry, job tipi -> factory eşleşmelerini tutar.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]JobFactory
}

// JobRegistry, uygulama genelinde kullanılan global registry'dir.
var JobRegistry = &Registry{
	factories: make(map[string]JobFactory),
}

// Register, bir job tipini factory'si ile kaydeder.
func (r *Registry) Register(jobType string, factory JobFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[jobType] = factory
}

// Create, register edilmiş tipten yeni bir job instance oluşturur.
func (r *Registry) Create(jobType string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[jobType]
	if !exists {
		return nil, fmt.Errorf("job tipi register edilmemiş: %s", jobType)
	}

	return factory(), nil
}

// RegisterJob, global registry'ye job kaydeder.
func RegisterJob(jobType string, factory JobFactory) {
	JobRegistry.Register(jobType, factory)
}
