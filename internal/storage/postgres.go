package storage

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connStr string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	repo := &PostgresRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *PostgresRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		variant TEXT,
		fecha_inicio TEXT NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_operations_user_id ON operations(user_id);
	CREATE INDEX IF NOT EXISTS idx_operations_submitted_at ON operations(submitted_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *PostgresRepository) Get(key string) ([]byte, bool, error) {
	var value string

	err := r.db.QueryRow(`SELECT value FROM drafts WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return []byte(value), true, nil
}

func (r *PostgresRepository) Set(key string, value []byte) error {
	query := `
		INSERT INTO drafts (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(query, key, string(value), time.Now())
	return err
}

func (r *PostgresRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM drafts WHERE key = $1`, key)
	return err
}

func (r *PostgresRepository) SaveOperation(record *OperationRecord) error {
	query := `
		INSERT INTO operations (id, user_id, user_name, kind, variant, fecha_inicio, submitted_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		record.ID,
		record.UserID,
		record.UserName,
		record.Kind,
		record.Variant,
		record.FechaInicio,
		record.SubmittedAt,
		string(record.Payload),
	)

	return err
}

func (r *PostgresRepository) ListOperations(userID string) ([]OperationRecord, error) {
	query := `
		SELECT id, user_id, user_name, kind, variant, fecha_inicio, submitted_at, payload
		FROM operations
		WHERE user_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOperations(rows)
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
