package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresRewriteQuery(t *testing.T) {
	d := NewPostgresDialect()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"single", "SELECT * FROM children WHERE id = ?", "SELECT * FROM children WHERE id = $1"},
		{"multiple", "INSERT INTO badges (id, name) VALUES (?, ?)", "INSERT INTO badges (id, name) VALUES ($1, $2)"},
		{"many ordered", "UPDATE sessions SET status = ?, final_score = ? WHERE id = ?", "UPDATE sessions SET status = $1, final_score = $2 WHERE id = $3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.RewriteQuery(tt.query))
		})
	}
}

func TestSQLiteRewriteQueryIsIdentity(t *testing.T) {
	d := NewSQLiteDialect()
	q := "SELECT * FROM children WHERE id = ? AND guardian_id = ?"
	assert.Equal(t, q, d.RewriteQuery(q))
}

func TestMySQLRewriteQueryIsIdentity(t *testing.T) {
	d := NewMySQLDialect()
	q := "DELETE FROM sessions WHERE child_id = ?"
	assert.Equal(t, q, d.RewriteQuery(q))
}

func TestDialectMigrationsSubdirs(t *testing.T) {
	assert.Equal(t, "sqlite", NewSQLiteDialect().MigrationsSubdir())
	assert.Equal(t, "postgres", NewPostgresDialect().MigrationsSubdir())
	assert.Equal(t, "mysql", NewMySQLDialect().MigrationsSubdir())
}
