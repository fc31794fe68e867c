// -----------------------------------------------------------------------------
// MySQL Connection
// -----------------------------------------------------------------------------
// Uygulamanın MySQL veritabanına bağlanmasını sağlayan merkezi bağlantı
// fonksiyonu. Connection pool ayarları burada varsayılan değerlerle yapılır;
// main.go config'e göre üzerine yazabilir.
// -----------------------------------------------------------------------------

package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Connect, verilen DSN ile MySQL'e bağlanır, pool ayarlarını yapar ve
// Ping ile bağlantıyı doğrular.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Veritabanına bağlanılıyor...")
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Veritabanı bağlantısı başarılı!")
	return db, nil
}
