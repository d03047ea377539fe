// Package migration はSQLiteデータベースのスキーママイグレーションを管理する。
// fs.FSからSQLファイルを読み込み、schema_migrationsテーブルで適用状態を追跡する。
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
)

// suffix はマイグレーションファイルの拡張子。
const suffix = ".up.sql"

// File は1つのマイグレーションファイルを表す。
type File struct {
	// Version はファイル名先頭の連番。
	Version int
	// Name はバージョン以降の説明部分。
	Name string
	// Path はfs.FS内のパス。
	Path string
}

// Run はdir配下のマイグレーションを順序通りに適用し、適用した件数を返す。
// 適用済みのバージョンはスキップする。
// ファイル名形式: 000001_description.up.sql
func Run(ctx context.Context, logger logr.Logger, db *sql.DB, fsys fs.FS, dir string) (int, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return 0, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("reading applied versions: %w", err)
	}

	files, err := Collect(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("collecting migration files: %w", err)
	}

	n := 0
	for _, f := range files {
		if applied[f.Version] {
			continue
		}
		if err := apply(ctx, db, fsys, f); err != nil {
			return n, fmt.Errorf("applying migration %06d: %w", f.Version, err)
		}
		logger.V(1).Info("applied migration", "version", f.Version, "name", f.Name)
		n++
	}
	return n, nil
}

// Collect はdirから *.up.sql を集め、バージョン順に並べて返す。
// 名前が形式に合わないファイルは無視する。
func Collect(fsys fs.FS, dir string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		version, name, ok := strings.Cut(strings.TrimSuffix(entry.Name(), suffix), "_")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(version)
		if err != nil {
			continue
		}
		files = append(files, File{
			Version: v,
			Name:    name,
			Path:    path.Join(dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})
	return files, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// apply は1つのマイグレーションをトランザクション内で適用する。
func apply(ctx context.Context, db *sql.DB, fsys fs.FS, f File) error {
	content, err := fs.ReadFile(fsys, f.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", f.Version); err != nil {
		return err
	}
	return tx.Commit()
}
