package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourhostel/stat-syncer/internal/domain"
)

// SQLiteReportRepository stores report documents as raw JSON rows in a
// local SQLite database. Documents are decoded on read; the aggregation
// logic lives above this layer.
type SQLiteReportRepository struct {
	db *sql.DB
}

// NewSQLiteReportRepository opens (or creates) the report database at
// the given path and ensures the schema exists.
func NewSQLiteReportRepository(path string) (*SQLiteReportRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report db: %w", err)
	}

	// Single writer; reads are concurrent-safe under WAL
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS report (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_json BLOB NOT NULL,
			loaded_at TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create report schema: %w", err)
	}

	return &SQLiteReportRepository{db: db}, nil
}

// AllDocuments returns every stored report document in insertion order.
func (r *SQLiteReportRepository) AllDocuments(ctx context.Context) ([]domain.ReportDocument, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc_json FROM report ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query report documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.ReportDocument
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan report document: %w", err)
		}

		var doc domain.ReportDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode report document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report documents: %w", err)
	}

	return docs, nil
}

// ReplaceAll swaps the stored collection for the given raw documents
// in a single transaction.
func (r *SQLiteReportRepository) ReplaceAll(ctx context.Context, docs [][]byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM report`); err != nil {
		return fmt.Errorf("failed to clear report collection: %w", err)
	}

	now := time.Now().UTC()
	for _, raw := range docs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report (doc_json, loaded_at) VALUES (?, ?)`, raw, now); err != nil {
			return fmt.Errorf("failed to insert report document: %w", err)
		}
	}

	return tx.Commit()
}

// ImportFile loads a report JSON file into the store, replacing any
// previous contents. The file may hold a single document or an array.
func (r *SQLiteReportRepository) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read report file: %w", err)
	}

	docs, err := splitDocuments(data)
	if err != nil {
		return 0, err
	}

	if err := r.ReplaceAll(ctx, docs); err != nil {
		return 0, err
	}

	log.Printf("[ReportRepository] Imported %d document(s) from %s", len(docs), path)
	return len(docs), nil
}

// splitDocuments accepts either one JSON object or a JSON array of
// objects and returns the individual raw documents.
func splitDocuments(data []byte) ([][]byte, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		docs := make([][]byte, len(arr))
		for i, raw := range arr {
			docs[i] = raw
		}
		return docs, nil
	}

	var obj json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("report file is not valid JSON: %w", err)
	}
	return [][]byte{obj}, nil
}

// Close closes the underlying database.
func (r *SQLiteReportRepository) Close() error {
	return r.db.Close()
}
