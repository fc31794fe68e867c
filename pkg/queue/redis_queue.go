// -----------------------------------------------------------------------------
// Redis Queue Driver
// -----------------------------------------------------------------------------
// Production queue driver'ı. Kullanılan Redis veri yapıları:
//
//	queues:{name}          - List (FIFO)
//	queues:{name}:delayed  - Sorted Set (score = available_at timestamp)
//	queues:{name}:reserved - Set (işlenmekte olan job'lar)
//	queues:failed          - List (kalıcı olarak başarısız job'lar)
//
// Pop, önce zamanı gelen delayed job'ları ana kuyruğa taşır, sonra BLPOP
// ile bekler.
// -----------------------------------------------------------------------------

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisQueue, Redis tabanlı queue implementasyonudur.
type RedisQueue struct {
	client *redis.Client
	logger *log.Logger
	prefix string
}

// NewRedisQueue, yeni bir Redis queue oluşturur.
//
//	q := queue.NewRedisQueue(redisClient, logger, "groupbuy:")
//	q.Push(refundJob, "refunds")
func NewRedisQueue(client *redis.Client, logger *log.Logger, prefix string) *RedisQueue {
	return &RedisQueue{
		client: client,
		logger: logger,
		prefix: prefix,
	}
}

func (r *RedisQueue) queueKey(queue string) string {
	return r.prefix + "queues:" + queue
}

func (r *RedisQueue) delayedKey(queue string) string {
	return r.prefix + "queues:" + queue + ":delayed"
}

func (r *RedisQueue) reservedKey(queue string) string {
	return r.prefix + "queues:" + queue + ":reserved"
}

func (r *RedisQueue) failedKey() string {
	return r.prefix + "queues:failed"
}

// Push, job'ı hemen kuyruğa ekler.
func (r *RedisQueue) Push(job Job, queue string) error {
	return r.Later(0, job, queue)
}

// Later, job'ı gecikme ile kuyruğa ekler. Delay > 0 ise job sorted set'te
// bekler ve zamanı gelince ana kuyruğa taşınır.
func (r *RedisQueue) Later(delay time.Duration, job Job, queue string) error {
	ctx := context.Background()

	if job.GetID() == "" {
		job.SetID(uuid.New().String())
	}
	job.SetQueue(queue)

	payload, err := r.createPayload(job, delay)
	if err != nil {
		r.logger.Printf("❌ Payload oluşturma hatası: %v", err)
		return fmt.Errorf("payload oluşturulamadı: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Printf("❌ JSON encode hatası: %v", err)
		return fmt.Errorf("json encode hatası: %w", err)
	}

	if delay > 0 {
		availableAt := time.Now().Add(delay).Unix()
		err = r.client.ZAdd(ctx, r.delayedKey(queue), redis.Z{
			Score:  float64(availableAt),
			Member: data,
		}).Err()
		if err != nil {
			r.logger.Printf("❌ Delayed job push hatası [%s]: %v", queue, err)
			return fmt.Errorf("delayed job push hatası: %w", err)
		}

		r.logger.Printf("✅ Delayed job pushed: %s (queue: %s, delay: %v)", job.GetID(), queue, delay)
		return nil
	}

	if err := r.client.RPush(ctx, r.queueKey(queue), data).Err(); err != nil {
		r.logger.Printf("❌ Job push hatası [%s]: %v", queue, err)
		return fmt.Errorf("job push hatası: %w", err)
	}

	r.logger.Printf("✅ Job pushed: %s (queue: %s)", job.GetID(), queue)
	return nil
}

// Pop, kuyruktan bir job çeker. 5 saniyelik BLPOP timeout'u sonunda kuyruk
// hala boşsa nil döner.
func (r *RedisQueue) Pop(queue string) (Job, error) {
	ctx := context.Background()

	r.migrateDelayedJobs(queue)

	result, err := r.client.BLPop(ctx, 5*time.Second, r.queueKey(queue)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Printf("❌ Job pop hatası [%s]: %v", queue, err)
		return nil, fmt.Errorf("job pop hatası: %w", err)
	}

	// result[0] = key, result[1] = value
	data := result[1]

	var payload JobPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		r.logger.Printf("❌ JSON decode hatası: %v", err)
		return nil, fmt.Errorf("json decode hatası: %w", err)
	}

	job, err := r.createJobInstance(&payload)
	if err != nil {
		r.logger.Printf("❌ Job instance oluşturma hatası: %v", err)
		return nil, fmt.Errorf("job instance oluşturulamadı: %w", err)
	}

	r.client.SAdd(ctx, r.reservedKey(queue), data)

	r.logger.Printf("🔄 Job popped: %s (queue: %s, attempts: %d)", job.GetID(), queue, job.GetAttempts())
	return job, nil
}

// Delete, işlenen job'ı reserved set'ten kaldırır.
func (r *RedisQueue) Delete(queue string, job Job) error {
	ctx := context.Background()

	payload, err := r.createPayload(job, 0)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := r.client.SRem(ctx, r.reservedKey(queue), data).Err(); err != nil {
		r.logger.Printf("❌ Job delete hatası [%s]: %v", queue, err)
		return fmt.Errorf("job delete hatası: %w", err)
	}

	r.logger.Printf("✅ Job deleted: %s (queue: %s)", job.GetID(), queue)
	return nil
}

// Release, job'ı attempt sayısını artırarak tekrar kuyruğa ekler. Max
// attempt aşıldıysa job failed listesine taşınır.
func (r *RedisQueue) Release(queue string, job Job, delay time.Duration) error {
	ctx := context.Background()

	job.SetAttempts(job.GetAttempts() + 1)

	payload, err := r.createPayload(job, delay)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	r.client.SRem(ctx, r.reservedKey(queue), data)

	if job.GetAttempts() >= job.GetMaxAttempts() {
		r.client.RPush(ctx, r.failedKey(), data)
		r.logger.Printf("⚠️  Job failed (max attempts): %s (queue: %s, attempts: %d)", job.GetID(), queue, job.GetAttempts())
		return nil
	}

	return r.Later(delay, job, queue)
}

// Size, bekleyen job sayısını döndürür (ana kuyruk + delayed).
func (r *RedisQueue) Size(queue string) (int64, error) {
	ctx := context.Background()

	normalSize, err := r.client.LLen(ctx, r.queueKey(queue)).Result()
	if err != nil {
		return 0, err
	}

	delayedSize, err := r.client.ZCard(ctx, r.delayedKey(queue)).Result()
	if err != nil {
		return 0, err
	}

	return normalSize + delayedSize, nil
}

// migrateDelayedJobs, zamanı gelen delayed job'ları ana kuyruğa taşır.
func (r *RedisQueue) migrateDelayedJobs(queue string) {
	ctx := context.Background()
	now := float64(time.Now().Unix())

	jobs, err := r.client.ZRangeByScore(ctx, r.delayedKey(queue), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil || len(jobs) == 0 {
		return
	}

	for _, jobData := range jobs {
		r.client.RPush(ctx, r.queueKey(queue), jobData)
		r.client.ZRem(ctx, r.delayedKey(queue), jobData)
	}

	r.logger.Printf("🔄 Migrated %d delayed jobs (queue: %s)", len(jobs), queue)
}

func (r *RedisQueue) createPayload(job Job, delay time.Duration) (*JobPayload, error) {
	jobData, err := job.GetPayload()
	if err != nil {
		return nil, err
	}

	availableAt := time.Now()
	if delay > 0 {
		availableAt = availableAt.Add(delay)
	}

	return &JobPayload{
		ID:          job.GetID(),
		Type:        fmt.Sprintf("%T", job),
		Queue:       job.GetQueue(),
		Payload:     jobData,
		Attempts:    job.GetAttempts(),
		MaxAttempts: job.GetMaxAttempts(),
		CreatedAt:   time.Now(),
		AvailableAt: availableAt,
	}, nil
}

// createJobInstance, payload'dan registry üzerinden job üretir. Job tipi
// register edilmemişse hata döner.
func (r *RedisQueue) createJobInstance(payload *JobPayload) (Job, error) {
	job, err := JobRegistry.Create(payload.Type)
	if err != nil {
		return nil, err
	}

	job.SetID(payload.ID)
	job.SetQueue(payload.Queue)
	job.SetAttempts(payload.Attempts)

	if err := job.SetPayload(payload.Payload); err != nil {
		return nil, err
	}

	return job, nil
}
