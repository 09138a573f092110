package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// KV stores opaque blobs by key.
type KV struct {
	drv *entsql.Driver
}

func (kv *KV) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// Get returns the blob stored under key. ok is false when the key is absent.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := kv.builder().
		Select("data").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("id", key)).
		Query()

	rows := &entsql.Rows{}
	if err := kv.drv.Query(ctx, query, args, rows); err != nil {
		return nil, false, fmt.Errorf("query %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("query %q: %w", key, err)
		}
		return nil, false, nil
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, false, fmt.Errorf("scan %q: %w", key, err)
	}
	return data, true, nil
}

// Set stores blob under key, replacing any previous value.
func (kv *KV) Set(ctx context.Context, key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	query, args := kv.builder().
		Insert(kvTable).
		Columns("id", "data", "updated_at").
		Values(key, blob, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := kv.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
