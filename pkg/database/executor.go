package database

import "database/sql"

// QueryExecutor, hem *sql.DB hem *sql.Tx tarafından örtük olarak
// uygulanan metodları tanımlar. QueryBuilder bu interface'e bağlanır;
// böylece aynı builder normal sorgularda da transaction içinde de
// çalışabilir.
type QueryExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
