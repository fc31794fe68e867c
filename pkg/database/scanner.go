package database

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// Reflection Tabanlı SQL Scanner
// -----------------------------------------------------------------------------
// sql.Rows sonuçlarını `db` struct tag'lerine göre struct'lara tarar.
// Struct field analizi pahalı olduğu için tip başına cache'lenir; cache
// entry'leri periyodik cleanup ile eskidikçe düşürülür.
// -----------------------------------------------------------------------------

type fieldMap map[string]string

type scannerCacheEntry struct {
	fieldMap   fieldMap
	lastAccess time.Time
}

// Scanner, field map cache'ini ve cleanup lifecycle'ını yönetir.
type Scanner struct {
	cache      map[reflect.Type]*scannerCacheEntry
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	cleanupInt time.Duration
	maxAge     time.Duration
}

var globalScanner *Scanner
var scannerOnce sync.Once

// InitScanner, global scanner instance'ını başlatır.
func InitScanner(cleanupInterval, maxAge time.Duration) *Scanner {
	scannerOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		globalScanner = &Scanner{
			cache:      make(map[reflect.Type]*scannerCacheEntry),
			ctx:        ctx,
			cancel:     cancel,
			cleanupInt: cleanupInterval,
			maxAge:     maxAge,
		}
		globalScanner.startCleanup()
	})
	return globalScanner
}

// GetScanner, global scanner'ı döndürür; başlatılmamışsa varsayılan
// değerlerle başlatır.
func GetScanner() *Scanner {
	if globalScanner == nil {
		return InitScanner(10*time.Minute, 30*time.Minute)
	}
	return globalScanner
}

func (s *Scanner) startCleanup() {
	s.wg.Add(1)
	go s.cleanupLoop()
}

func (s *Scanner) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInt)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.ctx.Done():
			return
		}
	}
}

// cleanup, maxAge'den beri erişilmemiş cache entry'lerini siler.
func (s *Scanner) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for typ, entry := range s.cache {
		if now.Sub(entry.lastAccess) > s.maxAge {
			delete(s.cache, typ)
		}
	}
}

// Stop, cleanup goroutine'ini gracefully durdurur.
func (s *Scanner) Stop() {
	s.cancel()
	s.wg.Wait()
}

// getStructFieldMap, struct tipini analiz eder ve kolon -> field
// eşlemesini cache'den döndürür. Embedded struct'lar özyineli işlenir.
func (s *Scanner) getStructFieldMap(structType reflect.Type) fieldMap {
	s.mu.RLock()
	if entry, ok := s.cache[structType]; ok {
		entry.lastAccess = time.Now()
		s.mu.RUnlock()
		return entry.fieldMap
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check pattern
	if entry, ok := s.cache[structType]; ok {
		entry.lastAccess = time.Now()
		return entry.fieldMap
	}

	mapping := make(fieldMap)
	numFields := structType.NumField()

	for i := 0; i < numFields; i++ {
		field := structType.Field(i)

		if field.Anonymous {
			if field.Type.Kind() == reflect.Struct {
				for col, fName := range s.getStructFieldMap(field.Type) {
					mapping[col] = field.Name + "." + fName
				}
			}
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = strings.ToLower(field.Name)
		}

		mapping[tag] = field.Name
	}

	s.cache[structType] = &scannerCacheEntry{
		fieldMap:   mapping,
		lastAccess: time.Now(),
	}

	return mapping
}

// ScanStruct, tek bir *sql.Rows satırını bir struct'a tarar. Eşleşmeyen
// kolonlar sql.RawBytes'a düşürülür.
func ScanStruct(rows *sql.Rows, dest any) error {
	scanner := GetScanner()

	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("scanner: dest bir struct pointer olmalıdır, %T alındı", dest)
	}

	destElem := destValue.Elem()
	destType := destElem.Type()

	cols, _ := rows.Columns()
	fieldMap := scanner.getStructFieldMap(destType)

	scanArgs := make([]any, len(cols))

	for i, colName := range cols {
		fieldName, ok := fieldMap[colName]
		if !ok {
			scanArgs[i] = new(sql.RawBytes)
			continue
		}

		fieldVal := destElem.FieldByName(fieldName)

		if !fieldVal.IsValid() {
			fieldVal = findEmbeddedField(destElem, fieldName)
		}

		if !fieldVal.IsValid() || !fieldVal.CanSet() {
			return fmt.Errorf("scanner: '%s' alanı bulunamadı veya ayarlanamıyor", fieldName)
		}

		scanArgs[i] = fieldVal.Addr().Interface()
	}

	return rows.Scan(scanArgs...)
}

// findEmbeddedField, "A.B" gibi iç içe alan adlarını çözer.
func findEmbeddedField(v reflect.Value, name string) reflect.Value {
	parts := strings.Split(name, ".")
	current := v

	for _, part := range parts {
		if current.Kind() == reflect.Ptr {
			current = current.Elem()
		}
		if current.Kind() != reflect.Struct {
			return reflect.Value{}
		}
		current = current.FieldByName(part)
	}

	return current
}

// ScanSlice, tüm sonuç kümesini bir struct slice'ına tarar.
func ScanSlice(rows *sql.Rows, dest any) error {
	sliceValue := reflect.ValueOf(dest)
	if sliceValue.Kind() != reflect.Ptr || sliceValue.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("scanner: dest bir slice pointer olmalıdır, %T alındı", dest)
	}

	sliceElem := sliceValue.Elem()
	structType := sliceElem.Type().Elem()

	for rows.Next() {
		newStructPtr := reflect.New(structType)

		if err := ScanStruct(rows, newStructPtr.Interface()); err != nil {
			return err
		}

		sliceElem.Set(reflect.Append(sliceElem, newStructPtr.Elem()))
	}

	return rows.Err()
}
