package database

// Grammar, SQL lehçesine özgü sorgu üretimini tanımlar. Şu an tek
// implementasyon MySQLGrammar'dır; farklı bir veritabanına geçiş bu
// interface'in yeni bir implementasyonu ile yapılır.
type Grammar interface {
	// Wrap, identifier'ları lehçeye göre sarmalar (MySQL: backtick).
	Wrap(value string) (string, error)

	// CompileSelect, builder state'inden SELECT sorgusu üretir.
	CompileSelect(qb *QueryBuilder) (string, []interface{}, error)

	// CompileInsert, INSERT sorgusu üretir.
	CompileInsert(table string, data map[string]interface{}) (string, []interface{}, error)

	// CompileUpdate, UPDATE sorgusu üretir.
	CompileUpdate(table string, data map[string]interface{}, wheres []WhereClause) (string, []interface{}, error)

	// CompileDelete, DELETE sorgusu üretir.
	CompileDelete(table string, wheres []WhereClause) (string, []interface{}, error)
}
