// -----------------------------------------------------------------------------
// Query Builder Yardımcı Tipleri
// -----------------------------------------------------------------------------
// QueryBuilder'ın kullandığı clause tipleri. Direction gibi alanlar enum-like
// tutulur; kullanıcı input'u hiçbir zaman direkt SQL'e yazılmaz.
// -----------------------------------------------------------------------------

package database

// OrderDirection, ORDER BY için izin verilen yönleri temsil eder.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// OrderClause, bir ORDER BY ifadesini temsil eder. Column compile
// aşamasında backtick ile sarmalanır, Direction sadece ASC/DESC olabilir.
type OrderClause struct {
	Column    string
	Direction OrderDirection
}

// WhereClause, bir WHERE koşulunu temsil eder. Value her zaman prepared
// statement placeholder'ına bağlanır; operator whitelist kontrolü Grammar
// katmanında yapılır.
type WhereClause struct {
	Column   string
	Operator string
	Value    interface{}
	Boolean  string // "AND" veya "OR"
}
