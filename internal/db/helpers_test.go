package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestRebind(t *testing.T) {
	q := "SELECT id FROM tickets WHERE seat=? AND journey_id IN (?,?)"
	if got := Rebind(MySQL, q); got != q {
		t.Fatalf("mysql query changed: %s", got)
	}
	want := "SELECT id FROM tickets WHERE seat=$1 AND journey_id IN ($2,$3)"
	if got := Rebind(Postgres, q); got != want {
		t.Fatalf("rebind = %s", got)
	}
}

func TestPlaceholders(t *testing.T) {
	if got := Placeholders(3); got != "?,?,?" {
		t.Fatalf("placeholders = %q", got)
	}
	if got := Placeholders(0); got != "" {
		t.Fatalf("placeholders(0) = %q", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})) {
		t.Fatalf("mysql 1062 should be a unique violation")
	}
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("pg 23505 should be a unique violation")
	}
	if IsUniqueViolation(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("fk violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("pg 23503 should be a fk violation")
	}
}

func TestInsertID_MySQLUsesLastInsertID(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectExec("INSERT INTO stations").
		WithArgs("Kyiv", 50.45, 30.52).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := InsertID(context.Background(), conn, MySQL,
		"INSERT INTO stations (name, latitude, longitude) VALUES (?,?,?)", "Kyiv", 50.45, 30.52)
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertID_PostgresUsesReturning(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(`INSERT INTO stations \(name, latitude, longitude\) VALUES \(\$1,\$2,\$3\) RETURNING id`).
		WithArgs("Lviv", 49.84, 24.03).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := InsertID(context.Background(), conn, Postgres,
		"INSERT INTO stations (name, latitude, longitude) VALUES (?,?,?)", "Lviv", 49.84, 24.03)
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema_Postgres(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(`information_schema.tables`).
		WithArgs("tickets").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	for range postgresSchema {
		mock.ExpectExec(`CREATE (TABLE|INDEX) IF NOT EXISTS`).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := EnsureSchema(context.Background(), conn, Postgres); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema_StopsOnError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(`information_schema.tables`).
		WithArgs("tickets").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("tickets"))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS train_types`).
		WillReturnError(errors.New("permission denied"))

	if err := EnsureSchema(context.Background(), conn, MySQL); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLSchema_NoCheckOnCascadingForeignKeys(t *testing.T) {
	fkRe := regexp.MustCompile(`FOREIGN KEY \((\w+)\)[^,]*ON DELETE CASCADE`)
	checkRe := regexp.MustCompile(`CHECK \(([^)]*)\)`)

	for _, stmt := range mysqlSchema {
		for _, check := range checkRe.FindAllStringSubmatch(stmt, -1) {
			for _, fk := range fkRe.FindAllStringSubmatch(stmt, -1) {
				if strings.Contains(check[1], fk[1]) {
					t.Fatalf("CHECK (%s) uses cascading foreign key column %s:\n%s", check[1], fk[1], stmt)
				}
			}
		}
	}
}
