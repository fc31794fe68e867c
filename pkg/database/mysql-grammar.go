package database

import (
	"fmt"
	"regexp"
	"strings"
)

// MySQLGrammar, MySQL/MariaDB lehçesi için Grammar implementasyonudur.
// Identifier'lar backtick ile sarmalanır, operatörler whitelist'ten geçer
// ve tüm compile metodları panic yerine error döner.
type MySQLGrammar struct{}

func NewMySQLGrammar() *MySQLGrammar {
	return &MySQLGrammar{}
}

var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`)

var allowedOperators = map[string]bool{
	"=":           true,
	"!=":          true,
	"<>":          true,
	"<":           true,
	">":           true,
	"<=":          true,
	">=":          true,
	"LIKE":        true,
	"NOT LIKE":    true,
	"IN":          true,
	"NOT IN":      true,
	"BETWEEN":     true,
	"NOT BETWEEN": true,
	"IS":          true,
	"IS NOT":      true,
}

// Wrap, kolon ve tablo isimlerini MySQL backtick'leri ile sarmalar.
// Geçersiz identifier'da error döner.
func (g *MySQLGrammar) Wrap(value string) (string, error) {
	if value == "*" {
		return value, nil
	}

	// table.column formatı
	if strings.Contains(value, ".") {
		parts := strings.Split(value, ".")
		wrappedParts := make([]string, len(parts))
		for i, part := range parts {
			if !validIdentifierPattern.MatchString(part) {
				return "", fmt.Errorf("invalid SQL identifier: %s (contains unsafe characters)", part)
			}
			wrappedParts[i] = fmt.Sprintf("`%s`", part)
		}
		return strings.Join(wrappedParts, "."), nil
	}

	if !validIdentifierPattern.MatchString(value) {
		return "", fmt.Errorf("invalid SQL identifier: %s (contains unsafe characters)", value)
	}

	return fmt.Sprintf("`%s`", value), nil
}

// validateOperator, operatörün whitelist'te olduğunu kontrol eder.
func (g *MySQLGrammar) validateOperator(operator string) error {
	op := strings.ToUpper(strings.TrimSpace(operator))
	if !allowedOperators[op] {
		return fmt.Errorf("invalid SQL operator: %s (not in whitelist)", operator)
	}
	return nil
}

// CompileSelect, QueryBuilder state'inden SELECT sorgusu üretir.
func (g *MySQLGrammar) CompileSelect(qb *QueryBuilder) (string, []interface{}, error) {
	wrappedCols := make([]string, len(qb.columns))
	for i, col := range qb.columns {
		wrapped, err := g.Wrap(col)
		if err != nil {
			return "", nil, fmt.Errorf("column wrap error: %w", err)
		}
		wrappedCols[i] = wrapped
	}

	wrappedTable, err := g.Wrap(qb.table)
	if err != nil {
		return "", nil, fmt.Errorf("table wrap error: %w", err)
	}

	sql := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(wrappedCols, ", "),
		wrappedTable,
	)

	var args []interface{}

	if len(qb.wheres) > 0 {
		sql += " WHERE "
		for i, w := range qb.wheres {
			if err := g.validateOperator(w.Operator); err != nil {
				return "", nil, fmt.Errorf("where clause error: %w", err)
			}

			// SQL fonksiyonu içeren kolonlar wrap edilmez
			wrappedCol := w.Column
			if !strings.Contains(w.Column, "(") {
				var err error
				wrappedCol, err = g.Wrap(w.Column)
				if err != nil {
					return "", nil, fmt.Errorf("where column wrap error: %w", err)
				}
			}

			if i > 0 {
				sql += fmt.Sprintf(" %s ", w.Boolean)
			}

			operator := strings.ToUpper(w.Operator)

			switch operator {
			case "IN", "NOT IN":
				values, ok := w.Value.([]interface{})
				if !ok {
					return "", nil, fmt.Errorf("IN/NOT IN operator requires []interface{} value")
				}
				placeholders := make([]string, len(values))
				for j := range values {
					placeholders[j] = "?"
				}
				sql += fmt.Sprintf("%s %s (%s)", wrappedCol, operator, strings.Join(placeholders, ", "))
				args = append(args, values...)

			case "BETWEEN", "NOT BETWEEN":
				values, ok := w.Value.([]interface{})
				if !ok || len(values) != 2 {
					return "", nil, fmt.Errorf("BETWEEN operator requires exactly 2 values")
				}
				sql += fmt.Sprintf("%s %s ? AND ?", wrappedCol, operator)
				args = append(args, values[0], values[1])

			case "IS", "IS NOT":
				if w.Value == nil {
					sql += fmt.Sprintf("%s %s NULL", wrappedCol, operator)
				} else {
					sql += fmt.Sprintf("%s %s ?", wrappedCol, operator)
					args = append(args, w.Value)
				}

			default:
				sql += fmt.Sprintf("%s %s ?", wrappedCol, operator)
				args = append(args, w.Value)
			}
		}
	}

	if len(qb.orders) > 0 {
		wrappedOrders := make([]string, len(qb.orders))
		for i, order := range qb.orders {
			wrappedCol, err := g.Wrap(order.Column)
			if err != nil {
				return "", nil, fmt.Errorf("order column wrap error: %w", err)
			}
			wrappedOrders[i] = fmt.Sprintf("%s %s", wrappedCol, order.Direction)
		}
		sql += " ORDER BY " + strings.Join(wrappedOrders, ", ")
	}

	if qb.limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", qb.limit)
	}

	if qb.offset > 0 {
		sql += fmt.Sprintf(" OFFSET %d", qb.offset)
	}

	return sql, args, nil
}

// CompileInsert, INSERT sorgusu üretir.
func (g *MySQLGrammar) CompileInsert(table string, data map[string]interface{}) (string, []interface{}, error) {
	wrappedTable, err := g.Wrap(table)
	if err != nil {
		return "", nil, fmt.Errorf("table wrap error: %w", err)
	}

	cols := make([]string, 0, len(data))
	placeholders := make([]string, 0, len(data))
	args := make([]interface{}, 0, len(data))

	for k, v := range data {
		wrappedCol, err := g.Wrap(k)
		if err != nil {
			return "", nil, fmt.Errorf("column wrap error: %w", err)
		}
		cols = append(cols, wrappedCol)
		placeholders = append(placeholders, "?")
		args = append(args, v)
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		wrappedTable,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	return sql, args, nil
}

// CompileUpdate, UPDATE sorgusu üretir.
func (g *MySQLGrammar) CompileUpdate(table string, data map[string]interface{}, wheres []WhereClause) (string, []interface{}, error) {
	wrappedTable, err := g.Wrap(table)
	if err != nil {
		return "", nil, fmt.Errorf("table wrap error: %w", err)
	}

	sets := make([]string, 0, len(data))
	args := make([]interface{}, 0, len(data))

	for k, v := range data {
		wrappedCol, err := g.Wrap(k)
		if err != nil {
			return "", nil, fmt.Errorf("column wrap error: %w", err)
		}
		sets = append(sets, fmt.Sprintf("%s = ?", wrappedCol))
		args = append(args, v)
	}

	sql := fmt.Sprintf("UPDATE %s SET %s", wrappedTable, strings.Join(sets, ", "))

	whereSQL, whereArgs, err := g.compileWheres(wheres)
	if err != nil {
		return "", nil, err
	}
	sql += whereSQL
	args = append(args, whereArgs...)

	return sql, args, nil
}

// CompileDelete, DELETE sorgusu üretir.
func (g *MySQLGrammar) CompileDelete(table string, wheres []WhereClause) (string, []interface{}, error) {
	wrappedTable, err := g.Wrap(table)
	if err != nil {
		return "", nil, fmt.Errorf("table wrap error: %w", err)
	}

	sql := fmt.Sprintf("DELETE FROM %s", wrappedTable)

	whereSQL, whereArgs, err := g.compileWheres(wheres)
	if err != nil {
		return "", nil, err
	}
	sql += whereSQL

	return sql, whereArgs, nil
}

// compileWheres, UPDATE ve DELETE için basit WHERE clause'ları üretir.
// IS/IS NOT NULL desteklenir; IN/BETWEEN gibi çoklu değerli operatörler
// sadece SELECT tarafında kullanılır.
func (g *MySQLGrammar) compileWheres(wheres []WhereClause) (string, []interface{}, error) {
	if len(wheres) == 0 {
		return "", nil, nil
	}

	sql := " WHERE "
	var args []interface{}

	for i, w := range wheres {
		if err := g.validateOperator(w.Operator); err != nil {
			return "", nil, fmt.Errorf("where operator error: %w", err)
		}

		wrappedCol, err := g.Wrap(w.Column)
		if err != nil {
			return "", nil, fmt.Errorf("where column wrap error: %w", err)
		}

		if i > 0 {
			sql += fmt.Sprintf(" %s ", w.Boolean)
		}

		operator := strings.ToUpper(w.Operator)

		if (operator == "IS" || operator == "IS NOT") && w.Value == nil {
			sql += fmt.Sprintf("%s %s NULL", wrappedCol, operator)
			continue
		}

		sql += fmt.Sprintf("%s %s ?", wrappedCol, operator)
		args = append(args, w.Value)
	}

	return sql, args, nil
}
