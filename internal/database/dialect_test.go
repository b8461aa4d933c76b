package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if result {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestMySQLDSNEnablesParseTime(t *testing.T) {
	dialect := NewMySQLDialect()

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "no query parameters",
			url:      "user:pass@tcp(localhost:3306)/vocabquest",
			expected: "user:pass@tcp(localhost:3306)/vocabquest?parseTime=true",
		},
		{
			name:     "existing query parameters",
			url:      "user:pass@tcp(localhost:3306)/vocabquest?multiStatements=true",
			expected: "user:pass@tcp(localhost:3306)/vocabquest?multiStatements=true&parseTime=true",
		},
		{
			name:     "parseTime already set",
			url:      "user:pass@tcp(localhost:3306)/vocabquest?parseTime=true",
			expected: "user:pass@tcp(localhost:3306)/vocabquest?parseTime=true",
		},
		{
			name:     "parseTime explicitly disabled",
			url:      "user:pass@tcp(localhost:3306)/vocabquest?parseTime=false",
			expected: "user:pass@tcp(localhost:3306)/vocabquest?parseTime=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dialect.DSN(DialectConfig{URL: tt.url})
			if result != tt.expected {
				t.Errorf("DSN() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO users (name, email) VALUES (?, ?)",
			expected: "INSERT INTO users (name, email) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE users SET name = ?, email = ? WHERE id = ?",
			expected: "UPDATE users SET name = ?, email = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		err      error
		expected bool
	}{
		{
			name:     "SQLite unique constraint",
			dialect:  NewSQLiteDialect(),
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			expected: true,
		},
		{
			name:     "SQLite primary key constraint",
			dialect:  NewSQLiteDialect(),
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey},
			expected: true,
		},
		{
			name:     "SQLite other constraint",
			dialect:  NewSQLiteDialect(),
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey},
			expected: false,
		},
		{
			name:     "SQLite wrapped error",
			dialect:  NewSQLiteDialect(),
			err:      fmt.Errorf("insert failed: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}),
			expected: true,
		},
		{
			name:     "PostgreSQL unique violation",
			dialect:  NewPostgresDialect(),
			err:      &pq.Error{Code: "23505"},
			expected: true,
		},
		{
			name:     "PostgreSQL other error",
			dialect:  NewPostgresDialect(),
			err:      &pq.Error{Code: "23503"},
			expected: false,
		},
		{
			name:     "MySQL duplicate entry",
			dialect:  NewMySQLDialect(),
			err:      &mysql.MySQLError{Number: 1062},
			expected: true,
		},
		{
			name:     "MySQL other error",
			dialect:  NewMySQLDialect(),
			err:      &mysql.MySQLError{Number: 1452},
			expected: false,
		},
		{
			name:     "plain error",
			dialect:  NewSQLiteDialect(),
			err:      errors.New("not a driver error"),
			expected: false,
		},
		{
			name:     "nil error",
			dialect:  NewPostgresDialect(),
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.IsUniqueViolation(tt.err)
			if result != tt.expected {
				t.Errorf("IsUniqueViolation() = %v, want %v", result, tt.expected)
			}
		})
	}
}
