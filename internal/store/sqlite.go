package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"citizensera.com/sera/internal/catalog"
)

// SQLiteStore serves catalog queries from a SQLite database seeded at
// startup. The default DSN is an in-memory database, so nothing outlives the
// process.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS benefits (
        id TEXT PRIMARY KEY,
        position INTEGER NOT NULL,
        title TEXT NOT NULL,
        description TEXT NOT NULL,
        category TEXT NOT NULL,
        eligibility_match INTEGER NOT NULL CHECK (eligibility_match BETWEEN 0 AND 100),
        estimated_value INTEGER, -- NULL when unknown
        deadline TEXT,           -- YYYY-MM-DD, NULL when open-ended
        requirements_json TEXT NOT NULL,
        documents_json TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_benefits_category ON benefits (category);
    `
	_, err := s.db.Exec(schema)
	return err
}

// LoadBenefits replaces the catalog contents with benefits, keeping their
// order as the tie-break position.
func (s *SQLiteStore) LoadBenefits(ctx context.Context, benefits []catalog.Benefit) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog load: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM benefits"); err != nil {
		return fmt.Errorf("failed to clear benefits: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO benefits
        (id, position, title, description, category, eligibility_match, estimated_value, deadline, requirements_json, documents_json)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare benefit insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range benefits {
		reqJSON, err := json.Marshal(b.Requirements)
		if err != nil {
			return fmt.Errorf("failed to marshal requirements for %s: %w", b.ID, err)
		}
		docJSON, err := json.Marshal(b.Documents)
		if err != nil {
			return fmt.Errorf("failed to marshal documents for %s: %w", b.ID, err)
		}
		if _, err = stmt.ExecContext(ctx, b.ID, i, b.Title, b.Description, string(b.Category),
			b.EligibilityMatch, nullInt(b.EstimatedValue), nullString(b.Deadline), string(reqJSON), string(docJSON)); err != nil {
			return fmt.Errorf("failed to insert benefit %s: %w", b.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog load: %w", err)
	}
	return nil
}

const benefitColumns = "id, title, description, category, eligibility_match, estimated_value, deadline, requirements_json, documents_json"

// ListBenefits returns the benefits matching f in the requested order.
func (s *SQLiteStore) ListBenefits(ctx context.Context, f BenefitFilter) ([]catalog.Benefit, error) {
	f = f.normalized()
	query := "SELECT " + benefitColumns + ` FROM benefits
        WHERE (? = 'all' OR category = ?)
          AND (? = '' OR instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0)
        ORDER BY ` + orderClauses[f.Sort]

	rows, err := s.db.QueryContext(ctx, query, string(f.Category), string(f.Category), f.Query, f.Query, f.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to query benefits: %w", err)
	}
	defer rows.Close()

	benefits := []catalog.Benefit{}
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, err
		}
		benefits = append(benefits, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate benefits: %w", err)
	}
	return benefits, nil
}

// GetBenefit returns one benefit or ErrNotFound.
func (s *SQLiteStore) GetBenefit(ctx context.Context, id string) (*catalog.Benefit, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+benefitColumns+" FROM benefits WHERE id = ?", id)
	b, err := scanBenefit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("benefit %q: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBenefit(r rowScanner) (catalog.Benefit, error) {
	var (
		b                catalog.Benefit
		category         string
		value            sql.NullInt64
		deadline         sql.NullString
		reqJSON, docJSON string
	)
	if err := r.Scan(&b.ID, &b.Title, &b.Description, &category, &b.EligibilityMatch, &value, &deadline, &reqJSON, &docJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("failed to scan benefit row: %w", err)
	}
	b.Category = catalog.Category(category)
	if value.Valid {
		b.EstimatedValue = int(value.Int64)
	}
	if deadline.Valid {
		b.Deadline = deadline.String
	}
	if err := json.Unmarshal([]byte(reqJSON), &b.Requirements); err != nil {
		return b, fmt.Errorf("failed to unmarshal requirements for %s: %w", b.ID, err)
	}
	if err := json.Unmarshal([]byte(docJSON), &b.Documents); err != nil {
		return b, fmt.Errorf("failed to unmarshal documents for %s: %w", b.ID, err)
	}
	return b, nil
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
