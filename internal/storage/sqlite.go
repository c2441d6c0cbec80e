package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		variant TEXT,
		fecha_inicio TEXT NOT NULL,
		submitted_at DATETIME NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_operations_user_id ON operations(user_id);
	CREATE INDEX IF NOT EXISTS idx_operations_submitted_at ON operations(submitted_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepository) Get(key string) ([]byte, bool, error) {
	var value string

	err := r.db.QueryRow(`SELECT value FROM drafts WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return []byte(value), true, nil
}

func (r *SQLiteRepository) Set(key string, value []byte) error {
	query := `
		INSERT INTO drafts (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, key, string(value), time.Now())
	return err
}

func (r *SQLiteRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM drafts WHERE key = ?`, key)
	return err
}

func (r *SQLiteRepository) SaveOperation(record *OperationRecord) error {
	query := `
		INSERT INTO operations (id, user_id, user_name, kind, variant, fecha_inicio, submitted_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
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

func (r *SQLiteRepository) ListOperations(userID string) ([]OperationRecord, error) {
	query := `
		SELECT id, user_id, user_name, kind, variant, fecha_inicio, submitted_at, payload
		FROM operations
		WHERE user_id = ?
		ORDER BY submitted_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOperations(rows)
}

func scanOperations(rows *sql.Rows) ([]OperationRecord, error) {
	var records []OperationRecord

	for rows.Next() {
		var record OperationRecord
		var variant sql.NullString
		var payload string

		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.UserName,
			&record.Kind,
			&variant,
			&record.FechaInicio,
			&record.SubmittedAt,
			&payload,
		)
		if err != nil {
			return nil, err
		}

		if variant.Valid {
			record.Variant = variant.String
		}
		record.Payload = []byte(payload)

		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
