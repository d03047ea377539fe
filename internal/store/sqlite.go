package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/nao1215/kvgateway/pkg/migration"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.up.sql
var migrations embed.FS

// SQLite はSQLiteファイルをバックエンドとするストア。
type SQLite struct {
	db *sql.DB
}

// OpenSQLite はpathのSQLiteデータベースを開き、スキーマを適用する。
func OpenSQLite(ctx context.Context, logger logr.Logger, path string) (*SQLite, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// 書き込みを直列化し、":memory:" でも単一のDBを共有する
	db.SetMaxOpenConns(1)

	if _, err := migration.Run(ctx, logger, db, migrations, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating sqlite database: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get はkvテーブルから値を読む。
func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite select: %w", err)
	}
	return value, nil
}

// Set はkvテーブルへ値をupsertする。
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
	`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}
	return nil
}

// Ping はデータベース接続を確認する。
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close はデータベースを閉じる。
func (s *SQLite) Close() error {
	return s.db.Close()
}
