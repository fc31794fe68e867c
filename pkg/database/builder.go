package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------------
// Query Builder
// -----------------------------------------------------------------------------
// Laravel Query Builder'a benzer fluent SQL builder. Builder; tablo, kolonlar,
// where'lar, order, limit, offset state'ini tutar ve Grammar katmanına compile
// ettirir. Tüm değerler prepared statement ile bağlanır, identifier'lar
// whitelist regex'inden geçer.
//
//	var campaigns []models.Campaign
//	err := database.NewBuilder(db, grammar).
//	    Table("campaigns").
//	    Where("status", "=", "active").
//	    WhereNull("deleted_at").
//	    OrderBy("created_at", "DESC").
//	    Limit(20).
//	    Get(&campaigns)
// -----------------------------------------------------------------------------

// validIdentifierRegex, güvenli SQL identifier pattern'i. Sadece
// alphanumeric, underscore ve nokta (table.column) kabul eder.
var validIdentifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`)

type QueryBuilder struct {
	executor QueryExecutor
	grammar  Grammar
	table    string
	columns  []string
	wheres   []WhereClause
	orders   []OrderClause
	limit    int
	offset   int
}

// NewBuilder, yeni bir QueryBuilder üretir. Executor hem *sql.DB hem
// *sql.Tx olabilir.
func NewBuilder(executor QueryExecutor, grammar Grammar) *QueryBuilder {
	return &QueryBuilder{
		executor: executor,
		grammar:  grammar,
		columns:  []string{"*"},
	}
}

// validateIdentifier, kolon/tablo adını validate eder. Geçersiz identifier
// SQL injection girişimi sayılır ve panic atılır; kullanıcı input'u hiçbir
// zaman identifier olarak kullanılmamalıdır.
func validateIdentifier(identifier string, context string) {
	if identifier == "*" {
		return
	}

	if strings.TrimSpace(identifier) == "" {
		panic(fmt.Sprintf("Invalid %s name: empty identifier", context))
	}

	if !validIdentifierRegex.MatchString(identifier) {
		panic(fmt.Sprintf("Invalid %s name: '%s' (contains unsafe characters)", context, identifier))
	}

	if strings.Contains(identifier, ".") {
		parts := strings.Split(identifier, ".")

		// En fazla table.column formatı
		if len(parts) > 2 {
			panic(fmt.Sprintf("Invalid %s name: '%s' (too many dots)", context, identifier))
		}

		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				panic(fmt.Sprintf("Invalid %s name: '%s' (empty part)", context, identifier))
			}
		}
	}
}

// Table, sorgunun çalışacağı tabloyu belirler (method chaining).
func (qb *QueryBuilder) Table(tableName string) *QueryBuilder {
	validateIdentifier(tableName, "table")
	qb.table = tableName
	return qb
}

// Select, döndürülecek kolonları belirler. SQL fonksiyonları
// ("COUNT(*) as total" gibi) için esnek validation uygulanır; bu tür
// ifadeler developer tarafından yazılır, user input olmamalıdır.
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if strings.Contains(col, "(") && strings.Contains(col, ")") {
			if strings.Contains(col, ";") || strings.Contains(col, "--") {
				panic(fmt.Sprintf("Invalid column expression: '%s' (suspicious content)", col))
			}
			continue
		}

		if strings.Contains(strings.ToLower(col), " as ") {
			parts := strings.Split(col, " as ")
			if len(parts) == 2 {
				alias := strings.TrimSpace(parts[1])
				validateIdentifier(alias, "column alias")
				continue
			}
		}

		validateIdentifier(col, "column")
	}

	qb.columns = columns
	return qb
}

// Where, sorguya AND'li bir WHERE koşulu ekler. Operatör whitelist
// kontrolü Grammar katmanında yapılır.
//
//	qb.Where("status", "=", "active")
//	qb.Where("remaining_slots", ">", 0)
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	validateIdentifier(column, "column")

	qb.wheres = append(qb.wheres, WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
		Boolean:  "AND",
	})
	return qb
}

// OrWhere, sorguya OR'lu bir WHERE koşulu ekler.
func (qb *QueryBuilder) OrWhere(column string, operator string, value interface{}) *QueryBuilder {
	validateIdentifier(column, "column")

	qb.wheres = append(qb.wheres, WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
		Boolean:  "OR",
	})
	return qb
}

// WhereIn, kolonun verilen değerlerden biri olmasını şart koşar.
//
//	qb.WhereIn("status", []interface{}{"pending", "active"})
func (qb *QueryBuilder) WhereIn(column string, values []interface{}) *QueryBuilder {
	validateIdentifier(column, "column")

	qb.wheres = append(qb.wheres, WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
		Boolean:  "AND",
	})
	return qb
}

// WhereBetween, kolonun iki değer arasında olmasını şart koşar.
func (qb *QueryBuilder) WhereBetween(column string, min, max interface{}) *QueryBuilder {
	validateIdentifier(column, "column")

	qb.wheres = append(qb.wheres, WhereClause{
		Column:   column,
		Operator: "BETWEEN",
		Value:    []interface{}{min, max},
		Boolean:  "AND",
	})
	return qb
}

// WhereNull, kolonun NULL olmasını şart koşar. Soft delete pattern'inde
// aktif kayıtları bulmak için kullanılır.
//
//	qb.WhereNull("deleted_at")
func (qb *QueryBuilder) WhereNull(column string) *QueryBuilder {
	validateIdentifier(column, "column")

	qb.wheres = append(qb.wheres, WhereClause{
		Column:   column,
		Operator: "IS",
		Value:    nil,
		Boolean:  "AND",
	})
	return qb
}

// WhereNotNull, kolonun NULL olmamasını şart koşar.
func (qb *QueryBuilder) WhereNotNull(column string) *QueryBuilder {
	validateIdentifier(column, "column")

	qb.wheres = append(qb.wheres, WhereClause{
		Column:   column,
		Operator: "IS NOT",
		Value:    nil,
		Boolean:  "AND",
	})
	return qb
}

// OrderBy, sonuçları sıralar. Direction whitelist kontrolünden geçer;
// geçersiz değerler "ASC"e düşer, SQL injection riski yoktur.
func (qb *QueryBuilder) OrderBy(column string, direction string) *QueryBuilder {
	validateIdentifier(column, "column")

	dir := strings.ToUpper(strings.TrimSpace(direction))

	var orderDir OrderDirection
	switch dir {
	case "DESC":
		orderDir = OrderDesc
	default:
		orderDir = OrderAsc
	}

	qb.orders = append(qb.orders, OrderClause{
		Column:    column,
		Direction: orderDir,
	})
	return qb
}

// Limit, döndürülecek maksimum satır sayısını belirler.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.limit = limit
	return qb
}

// Offset, atlanacak satır sayısını belirler (pagination).
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.offset = offset
	return qb
}

// Get, sorguyu çalıştırır ve sonuçları bir struct slice'ına tarar.
//
//	var participations []models.Participation
//	err := qb.Table("participations").Where("campaign_id", "=", id).Get(&participations)
func (qb *QueryBuilder) Get(dest any) error {
	sqlStr, args, err := qb.ToSQL()
	if err != nil {
		return fmt.Errorf("query compilation failed: %w", err)
	}

	rows, err := qb.executor.Query(sqlStr, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	return ScanSlice(rows, dest)
}

// First, sorguyu LIMIT 1 ile çalıştırır ve ilk sonucu tek struct'a tarar.
// Satır bulunamazsa sql.ErrNoRows döner.
func (qb *QueryBuilder) First(dest any) error {
	qb.Limit(1)

	sqlStr, args, err := qb.ToSQL()
	if err != nil {
		return fmt.Errorf("query compilation failed: %w", err)
	}

	rows, err := qb.executor.Query(sqlStr, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		return sql.ErrNoRows
	}

	return ScanStruct(rows, dest)
}

// ToSQL, builder state'ini SQL string ve parametrelere dönüştürür.
func (qb *QueryBuilder) ToSQL() (string, []interface{}, error) {
	return qb.grammar.CompileSelect(qb)
}

// ExecInsert, INSERT sorgusunu çalıştırır.
//
//	result, err := qb.Table("payments").ExecInsert(map[string]interface{}{
//	    "participation_id": p.ID,
//	    "amount":           p.DepositAmount,
//	})
//	lastID, _ := result.LastInsertId()
func (qb *QueryBuilder) ExecInsert(data map[string]interface{}) (sql.Result, error) {
	for column := range data {
		validateIdentifier(column, "column")
	}

	sqlStr, args, err := qb.grammar.CompileInsert(qb.table, data)
	if err != nil {
		return nil, fmt.Errorf("insert compilation failed: %w", err)
	}
	return qb.executor.Exec(sqlStr, args...)
}

// ExecUpdate, UPDATE sorgusunu çalıştırır. WHERE clause olmadan
// çağrılmamalıdır.
func (qb *QueryBuilder) ExecUpdate(data map[string]interface{}) (sql.Result, error) {
	for column := range data {
		validateIdentifier(column, "column")
	}

	sqlStr, args, err := qb.grammar.CompileUpdate(qb.table, data, qb.wheres)
	if err != nil {
		return nil, fmt.Errorf("update compilation failed: %w", err)
	}
	return qb.executor.Exec(sqlStr, args...)
}

// ExecDelete, DELETE sorgusunu çalıştırır. WHERE clause olmadan
// çağrılması tüm tabloyu siler; dikkatli kullanılmalıdır.
func (qb *QueryBuilder) ExecDelete() (sql.Result, error) {
	sqlStr, args, err := qb.grammar.CompileDelete(qb.table, qb.wheres)
	if err != nil {
		return nil, fmt.Errorf("delete compilation failed: %w", err)
	}
	return qb.executor.Exec(sqlStr, args...)
}
