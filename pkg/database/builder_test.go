package database

import (
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Query Builder Testleri
// -----------------------------------------------------------------------------
// SQL injection korumasının ve compile çıktısının doğruluğunu test eder.
// -----------------------------------------------------------------------------

func mustPanic(t *testing.T, input string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("'%s' için panic bekleniyordu, panic olmadı", input)
		}
	}()
	fn()
}

func mustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("geçerli identifier panic'e sebep oldu: %v", r)
		}
	}()
	fn()
}

func TestInjection_MaliciousColumnNames(t *testing.T) {
	grammar := NewMySQLGrammar()

	maliciousInputs := []string{
		"id; DROP TABLE campaigns--",
		"id' OR '1'='1",
		"id UNION SELECT * FROM users--",
		"id--",
		"id'",
		`id"`,
		"id`",
		"id/**/OR/**/1=1",
	}

	for _, column := range maliciousInputs {
		t.Run(column, func(t *testing.T) {
			mustPanic(t, column, func() {
				NewBuilder(nil, grammar).Table("campaigns").Where(column, "=", 1)
			})
			mustPanic(t, column, func() {
				NewBuilder(nil, grammar).Table("campaigns").OrderBy(column, "DESC")
			})
		})
	}
}

func TestInjection_MaliciousTableNames(t *testing.T) {
	grammar := NewMySQLGrammar()

	maliciousInputs := []string{
		"campaigns; DROP TABLE users--",
		"campaigns' OR '1'='1",
		"campaigns/**/UNION/**/SELECT",
		"",
		"   ",
	}

	for _, table := range maliciousInputs {
		t.Run(table, func(t *testing.T) {
			mustPanic(t, table, func() {
				NewBuilder(nil, grammar).Table(table)
			})
		})
	}
}

func TestInjection_MaliciousInsertColumns(t *testing.T) {
	grammar := NewMySQLGrammar()

	mustPanic(t, "insert column", func() {
		NewBuilder(nil, grammar).Table("payments").ExecInsert(map[string]interface{}{
			"amount; DROP TABLE payments--": 100,
		})
	})

	mustPanic(t, "update column", func() {
		NewBuilder(nil, grammar).Table("payments").
			Where("id", "=", 1).
			ExecUpdate(map[string]interface{}{
				"status' OR '1'='1": "refunded",
			})
	})
}

func TestValidIdentifiersAccepted(t *testing.T) {
	grammar := NewMySQLGrammar()

	mustNotPanic(t, func() {
		NewBuilder(nil, grammar).Table("campaigns").OrderBy("created_at", "DESC")
	})
	mustNotPanic(t, func() {
		NewBuilder(nil, grammar).Table("participations").OrderBy("campaigns.deadline", "ASC")
	})
	mustNotPanic(t, func() {
		NewBuilder(nil, grammar).Table("payments").Select("id", "amount", "idempotency_key")
	})
	mustNotPanic(t, func() {
		NewBuilder(nil, grammar).Table("campaigns").Select("*")
	})
	mustNotPanic(t, func() {
		NewBuilder(nil, grammar).Table("campaigns").Select("COUNT(*) as total")
	})
}

func TestMaliciousSelectExpressions(t *testing.T) {
	grammar := NewMySQLGrammar()

	maliciousFunctions := []string{
		"COUNT(*); DROP TABLE campaigns--",
		"SUM(amount)--comment",
	}

	for _, fn := range maliciousFunctions {
		t.Run(fn, func(t *testing.T) {
			mustPanic(t, fn, func() {
				NewBuilder(nil, grammar).Table("payments").Select(fn)
			})
		})
	}
}

func TestMultipleDotsRejected(t *testing.T) {
	grammar := NewMySQLGrammar()

	mustPanic(t, "schema.table.column", func() {
		NewBuilder(nil, grammar).Table("campaigns").OrderBy("db.campaigns.id", "ASC")
	})
}

func TestCompileSelect_FullQuery(t *testing.T) {
	grammar := NewMySQLGrammar()

	sql, args, err := NewBuilder(nil, grammar).
		Table("campaigns").
		Where("status", "=", "active").
		WhereNull("deleted_at").
		OrderBy("deadline", "ASC").
		Limit(20).
		Offset(40).
		ToSQL()
	if err != nil {
		t.Fatalf("compile hatası: %v", err)
	}

	expected := "SELECT * FROM `campaigns` WHERE `status` = ? AND `deleted_at` IS NULL ORDER BY `deadline` ASC LIMIT 20 OFFSET 40"
	if sql != expected {
		t.Errorf("beklenen SQL:\n%s\nüretilen:\n%s", expected, sql)
	}

	if len(args) != 1 || args[0] != "active" {
		t.Errorf("beklenmeyen args: %v", args)
	}
}

func TestCompileSelect_WhereIn(t *testing.T) {
	grammar := NewMySQLGrammar()

	sql, args, err := NewBuilder(nil, grammar).
		Table("participations").
		WhereIn("status", []interface{}{"pending_deposit", "active"}).
		ToSQL()
	if err != nil {
		t.Fatalf("compile hatası: %v", err)
	}

	if !strings.Contains(sql, "`status` IN (?, ?)") {
		t.Errorf("IN clause üretilemedi: %s", sql)
	}
	if len(args) != 2 {
		t.Errorf("2 arg bekleniyordu, %d geldi", len(args))
	}
}

func TestCompileUpdate_WithNullCheck(t *testing.T) {
	grammar := NewMySQLGrammar()

	sql, args, err := grammar.CompileUpdate("campaigns",
		map[string]interface{}{"status": "cancelled"},
		[]WhereClause{
			{Column: "id", Operator: "=", Value: int64(7), Boolean: "AND"},
			{Column: "deleted_at", Operator: "IS", Value: nil, Boolean: "AND"},
		})
	if err != nil {
		t.Fatalf("compile hatası: %v", err)
	}

	expected := "UPDATE `campaigns` SET `status` = ? WHERE `id` = ? AND `deleted_at` IS NULL"
	if sql != expected {
		t.Errorf("beklenen SQL:\n%s\nüretilen:\n%s", expected, sql)
	}
	if len(args) != 2 {
		t.Errorf("2 arg bekleniyordu, %d geldi", len(args))
	}
}

func TestOperatorWhitelist(t *testing.T) {
	grammar := NewMySQLGrammar()

	_, _, err := NewBuilder(nil, grammar).
		Table("campaigns").
		Where("id", "= 1 OR 1", 1).
		ToSQL()
	if err == nil {
		t.Error("whitelist dışı operatör için hata bekleniyordu")
	}
}

func TestOrderByDirectionNormalized(t *testing.T) {
	grammar := NewMySQLGrammar()

	sql, _, err := NewBuilder(nil, grammar).
		Table("campaigns").
		OrderBy("id", "DESC; DROP TABLE campaigns").
		ToSQL()
	if err != nil {
		t.Fatalf("compile hatası: %v", err)
	}

	// Geçersiz direction ASC'e düşmeli
	if !strings.HasSuffix(sql, "ORDER BY `id` ASC") {
		t.Errorf("geçersiz direction ASC'e normalize edilmedi: %s", sql)
	}
}

func BenchmarkCompileSelect(b *testing.B) {
	grammar := NewMySQLGrammar()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewBuilder(nil, grammar).
			Table("campaigns").
			Where("status", "=", "active").
			WhereNull("deleted_at").
			OrderBy("created_at", "DESC").
			ToSQL()
	}
}
