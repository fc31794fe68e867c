// -----------------------------------------------------------------------------
// Cache Interface
// -----------------------------------------------------------------------------
// Tüm cache driver'larının (Redis, Memory) implement ettiği interface.
// Laravel Cache facade pattern'ini takip eder: Get/Set/Delete, TTL desteği,
// Remember pattern'i ve counter operasyonları.
// -----------------------------------------------------------------------------

package cache

import (
	"time"
)

// Cache, cache driver'larının ortak interface'idir.
//
//	var store Cache = NewMemoryCache(logger)
//	store.Set("campaign:stats:5", stats, 30*time.Second)
type Cache interface {
	// Get, cache'den veri okur. Key bulunamazsa nil döner, hata vermez.
	Get(key string) (interface{}, error)

	// Set, cache'e veri yazar. TTL = 0 süresiz saklar; memory leak'e karşı
	// TTL belirtilmesi önerilir.
	Set(key string, value interface{}, ttl time.Duration) error

	// Delete, key'i siler. Key yoksa sessizce geçer.
	Delete(key string) error

	// Has, key'in cache'de olup olmadığını kontrol eder.
	Has(key string) (bool, error)

	// Remember, cache'den okur; bulamazsa callback'i çalıştırıp sonucu
	// cache'ler ve döndürür.
	//
	//	stats, err := store.Remember("campaign:stats:5", 30*time.Second, func() (interface{}, error) {
	//	    return computeStats()
	//	})
	Remember(key string, ttl time.Duration, callback func() (interface{}, error)) (interface{}, error)

	// Increment, sayısal değeri artırır. Key yoksa 0'dan başlatır.
	Increment(key string, value int64) (int64, error)

	// Decrement, sayısal değeri azaltır.
	Decrement(key string, value int64) (int64, error)

	// Flush, tüm cache'i temizler. Geri alınamaz!
	Flush() error

	// GetMultiple, birden fazla key'i tek round-trip'te okur.
	// Bulunamayan key'ler map'te nil olarak yer alır.
	GetMultiple(keys []string) (map[string]interface{}, error)

	// SetMultiple, birden fazla key-value'yu aynı TTL ile yazar.
	SetMultiple(values map[string]interface{}, ttl time.Duration) error

	// DeleteMultiple, birden fazla key'i tek seferde siler.
	DeleteMultiple(keys []string) error
}

// Stats, driver'ların opsiyonel olarak sunduğu istatistik interface'idir.
//
//	if s, ok := store.(Stats); ok {
//	    log.Printf("Cache stats: %+v", s.Stats())
//	}
type Stats interface {
	Stats() map[string]interface{}
}
