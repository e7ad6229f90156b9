package mockapi

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

const schema = `
CREATE SEQUENCE IF NOT EXISTS mock_documents_id_seq;
CREATE TABLE IF NOT EXISTS mock_documents (
  kind       TEXT        NOT NULL,
  id         BIGINT      NOT NULL,
  body       JSONB       NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  PRIMARY KEY (kind, id)
);`

// PGStore keeps mock documents in Postgres so data survives restarts.
type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

// OpenPGStore connects to dsn and creates the schema when missing.
func OpenPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s := NewPGStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStore) Close() { s.db.Close() }

func (s *PGStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err := s.db.Exec(ctx, schema)
	return err
}

func (s *PGStore) NextID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var id int64
	err := s.db.QueryRow(ctx, `SELECT nextval('mock_documents_id_seq')`).Scan(&id)
	return id, err
}

func (s *PGStore) Put(ctx context.Context, kind string, id int64, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO mock_documents (kind, id, body, updated_at)
    VALUES ($1, $2, $3, NOW())
    ON CONFLICT (kind, id) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
  `, kind, id, string(body)); err != nil {
		return err
	}
	// keep the sequence ahead of ids inserted with explicit values (seed data)
	if _, err := tx.Exec(ctx, `
    SELECT setval('mock_documents_id_seq', GREATEST($1, (SELECT last_value FROM mock_documents_id_seq)))
  `, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PGStore) Get(ctx context.Context, kind string, id int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var body []byte
	err := s.db.QueryRow(ctx, `
    SELECT body::text FROM mock_documents WHERE kind = $1 AND id = $2
  `, kind, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return body, err
}

func (s *PGStore) List(ctx context.Context, kind string) ([][]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
    SELECT body::text FROM mock_documents WHERE kind = $1 ORDER BY id
  `, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		out = append(out, body)
	}
	return out, rows.Err()
}

func (s *PGStore) Delete(ctx context.Context, kind string, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM mock_documents WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
