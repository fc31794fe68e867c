// -----------------------------------------------------------------------------
// Memory Cache Driver
// -----------------------------------------------------------------------------
// In-memory, non-persistent cache. Development, test ve tek sunuculu
// kurulumlar için uygundur; restart'ta içerik kaybolur. Thread-safe'tir ve
// expired entry'ler periyodik garbage collection ile temizlenir.
// -----------------------------------------------------------------------------

package cache

import (
	"log"
	"sync"
	"time"
)

// memoryEntry, memory'de saklanan tek bir cache kaydıdır.
type memoryEntry struct {
	value     interface{}
	expiresAt time.Time // zero value = süresiz
}

func (e *memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// MemoryCache, map tabanlı cache implementasyonudur.
type MemoryCache struct {
	store  map[string]*memoryEntry
	mu     sync.RWMutex
	logger *log.Logger
}

// NewMemoryCache, yeni bir memory cache oluşturur ve garbage collection
// goroutine'ini başlatır.
func NewMemoryCache(logger *log.Logger) *MemoryCache {
	mc := &MemoryCache{
		store:  make(map[string]*memoryEntry),
		logger: logger,
	}

	go mc.gcLoop()

	logger.Println("✅ Memory cache başlatıldı")

	return mc
}

// Get, cache'den veri okur. Key yoksa veya expire olmuşsa nil döner.
func (m *MemoryCache) Get(key string) (interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists || entry.expired() {
		return nil, nil
	}

	return entry.value, nil
}

// Set, cache'e veri yazar. ttl = 0 süresiz saklar.
func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.store[key] = &memoryEntry{
		value:     value,
		expiresAt: expiresAt,
	}

	return nil
}

// Delete, key'i siler.
func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

// Has, key'in varlığını kontrol eder.
func (m *MemoryCache) Has(key string) (bool, error) {
	val, err := m.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Remember, cache'den okur; cache miss'te callback'i çalıştırıp sonucu yazar.
func (m *MemoryCache) Remember(key string, ttl time.Duration, callback func() (interface{}, error)) (interface{}, error) {
	val, err := m.Get(key)
	if err != nil {
		return nil, err
	}

	if val != nil {
		return val, nil
	}

	result, err := callback()
	if err != nil {
		return nil, err
	}

	if err := m.Set(key, result, ttl); err != nil {
		m.logger.Printf("⚠️  Remember cache yazma hatası [%s]: %v", key, err)
	}

	return result, nil
}

// Increment, sayısal değeri artırır. Key yoksa 0'dan başlatır; mevcut TTL
// korunur.
func (m *MemoryCache) Increment(key string, value int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	var expiresAt time.Time

	if entry, exists := m.store[key]; exists {
		expiresAt = entry.expiresAt
		if !entry.expired() {
			if intVal, ok := entry.value.(int64); ok {
				current = intVal
			}
		}
	}

	newVal := current + value
	m.store[key] = &memoryEntry{
		value:     newVal,
		expiresAt: expiresAt,
	}

	return newVal, nil
}

// Decrement, sayısal değeri azaltır.
func (m *MemoryCache) Decrement(key string, value int64) (int64, error) {
	return m.Increment(key, -value)
}

// Flush, tüm cache'i temizler.
func (m *MemoryCache) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]*memoryEntry)
	m.logger.Println("⚠️  Memory cache tamamen temizlendi")

	return nil
}

// GetMultiple, birden fazla key'i okur. Bulunamayanlar nil olarak döner.
func (m *MemoryCache) GetMultiple(keys []string) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	for _, key := range keys {
		val, err := m.Get(key)
		if err != nil {
			result[key] = nil
			continue
		}
		result[key] = val
	}

	return result, nil
}

// SetMultiple, birden fazla key-value'yu aynı TTL ile yazar.
func (m *MemoryCache) SetMultiple(values map[string]interface{}, ttl time.Duration) error {
	for key, value := range values {
		if err := m.Set(key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMultiple, birden fazla key'i siler.
func (m *MemoryCache) DeleteMultiple(keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.store, key)
	}
	return nil
}

// Stats, cache istatistiklerini döndürür.
func (m *MemoryCache) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	validCount := 0
	for _, entry := range m.store {
		if !entry.expired() {
			validCount++
		}
	}

	return map[string]interface{}{
		"driver":       "memory",
		"total_keys":   len(m.store),
		"valid_keys":   validCount,
		"expired_keys": len(m.store) - validCount,
	}
}

// gcLoop, expired entry'leri 5 dakikada bir temizler.
func (m *MemoryCache) gcLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanExpired()
	}
}

func (m *MemoryCache) cleanExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleaned := 0
	for key, entry := range m.store {
		if entry.expired() {
			delete(m.store, key)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.Printf("🧹 Memory cache garbage collection: %d expired entry silindi", cleaned)
	}
}
