package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diwise/road-segments/internal/app/segments"
	"github.com/diwise/road-segments/internal/app/segments/features"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Db stores one row per feature, keyed by its position in the collection,
// and indexes the segment id so updates do not rewrite the whole collection.
type Db struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg Config) (Db, error) {
	p, err := connect(ctx, cfg)
	if err != nil {
		return Db{}, err
	}

	err = initialize(ctx, p)
	if err != nil {
		return Db{}, err
	}

	return Db{
		pool: p,
	}, nil
}

func initialize(ctx context.Context, pool *pgxpool.Pool) error {
	log := logging.GetFromContext(ctx)

	ddl := `
	CREATE TABLE IF NOT EXISTS segments (
		position	BIGINT	NOT NULL,
		feature		JSONB	NOT NULL,
		segment_id	JSONB	GENERATED ALWAYS AS (feature->'properties'->'id_trecho_qualidade') STORED,
		created_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
		modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (position)
	);

	CREATE INDEX IF NOT EXISTS segment_id_idx ON segments (segment_id);

	CREATE TABLE IF NOT EXISTS segment_collection (
		id			INT		NOT NULL DEFAULT 1,
		type		TEXT	NULL,
		members		JSONB	NULL,
		PRIMARY KEY (id)
	);
	`

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Error("could not begin transaction", "err", err.Error())
		return err
	}

	_, err = tx.Exec(ctx, ddl)
	if err != nil {
		log.Error("could not execute ddl statement", "err", err.Error())
		tx.Rollback(ctx)
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		log.Error("could not commit transaction", "err", err.Error())
		return err
	}

	return nil
}

func connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, cfg.ConnStr())
	if err != nil {
		return nil, err
	}

	err = conn.Ping(ctx)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return conn, err
}

func (db Db) Close() {
	db.pool.Close()
}

func (db Db) LoadAll(ctx context.Context) (features.FeatureCollection, error) {
	log := logging.GetFromContext(ctx)

	fc, err := db.loadAll(ctx)
	if err != nil {
		log.Error("could not load feature collection", "err", err.Error())
		return features.FeatureCollection{}, fmt.Errorf("%w: %s", segments.ErrStorageUnavailable, err.Error())
	}

	return fc, nil
}

func (db Db) loadAll(ctx context.Context) (features.FeatureCollection, error) {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return features.FeatureCollection{}, err
	}
	defer tx.Rollback(ctx)

	fc := features.FeatureCollection{
		Features: make([]features.Feature, 0),
	}

	var collectionType *string
	var members []byte

	err = tx.QueryRow(ctx, selectCollection).Scan(&collectionType, &members)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return features.FeatureCollection{}, err
	}

	if collectionType != nil {
		fc.Type = *collectionType
	}
	if len(members) > 0 {
		err = json.Unmarshal(members, &fc.Members)
		if err != nil {
			return features.FeatureCollection{}, err
		}
	}

	rows, err := tx.Query(ctx, selectFeatures)
	if err != nil {
		return features.FeatureCollection{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var b []byte
		err = rows.Scan(&b)
		if err != nil {
			return features.FeatureCollection{}, err
		}

		f := features.Feature{}
		err = f.UnmarshalJSON(b)
		if err != nil {
			return features.FeatureCollection{}, err
		}

		fc.Features = append(fc.Features, f)
	}

	if err = rows.Err(); err != nil {
		return features.FeatureCollection{}, err
	}

	return fc, nil
}

// UpdateAttribute runs as a single statement, concurrent updates are
// serialized by the row locks it takes.
func (db Db) UpdateAttribute(ctx context.Context, ids features.IDSet, attributeName string, attributeValue any) (int, error) {
	log := logging.GetFromContext(ctx)

	args, err := newUpdateAttributeArgs(ids, attributeName, attributeValue)
	if err != nil {
		log.Error("could not create update arguments", "err", err.Error())
		return 0, fmt.Errorf("%w: %s", segments.ErrStorageWriteFailure, err.Error())
	}

	tag, err := db.pool.Exec(ctx, updateAttribute, args)
	if err != nil {
		log.Error("could not execute statement", "err", err.Error())
		return 0, fmt.Errorf("%w: %s", segments.ErrStorageWriteFailure, err.Error())
	}

	return int(tag.RowsAffected()), nil
}

// Seed replaces all stored features with the contents of fc.
func (db Db) Seed(ctx context.Context, fc features.FeatureCollection) error {
	log := logging.GetFromContext(ctx)

	rows := make([][]any, 0, len(fc.Features))
	for i, f := range fc.Features {
		b, err := f.MarshalJSON()
		if err != nil {
			return err
		}
		rows = append(rows, []any{int64(i), b})
	}

	args, err := newCollectionArgs(fc)
	if err != nil {
		return err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		log.Error("could not begin transaction", "err", err.Error())
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, deleteFeatures)
	if err != nil {
		log.Error("could not delete features", "err", err.Error())
		return err
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"segments"}, []string{"position", "feature"}, pgx.CopyFromRows(rows))
	if err != nil {
		log.Error("could not copy features", "err", err.Error())
		return err
	}

	_, err = tx.Exec(ctx, upsertCollection, args)
	if err != nil {
		log.Error("could not store collection members", "err", err.Error())
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		log.Error("could not commit transaction", "err", err.Error())
		return err
	}

	log.Info("seeded segments", "count", len(rows))

	return nil
}

func (db Db) Count(ctx context.Context) (int64, error) {
	var count int64
	err := db.pool.QueryRow(ctx, countFeatures).Scan(&count)
	return count, err
}
