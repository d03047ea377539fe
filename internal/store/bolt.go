package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// boltBucket はキーバリューを格納するバケット名。
var boltBucket = []byte("kv")

// Bolt はbboltファイルをバックエンドとするストア。
// bboltのトランザクションが並行アクセスを直列化する。
type Bolt struct {
	db *bolt.DB
}

// OpenBolt はpathのbboltデータベースを開き、バケットを用意する。
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bolt bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

// Get はバケットから値を読む。
func (b *Bolt) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// vはトランザクション内でのみ有効なのでコピーする
		value, found = string(v), true
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("bolt view: %w", err)
	}
	if !found {
		return "", ErrNotFound
	}
	return value, nil
}

// Set はバケットへ値を書き込む。
func (b *Bolt) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	}); err != nil {
		return fmt.Errorf("bolt update: %w", err)
	}
	return nil
}

// Ping はバケットが読めることを確認する。
func (b *Bolt) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(boltBucket) == nil {
			return errors.New("bolt bucket missing")
		}
		return nil
	})
}

// Close はデータベースを閉じる。
func (b *Bolt) Close() error {
	return b.db.Close()
}
