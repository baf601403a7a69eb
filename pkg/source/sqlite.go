package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

// SQLite schema. class_weights is optional.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS members (
	name  TEXT NOT NULL PRIMARY KEY,
	class TEXT
);
CREATE TABLE IF NOT EXISTS relationships (
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	weight,
	type   TEXT
);
CREATE TABLE IF NOT EXISTS class_weights (
	class  TEXT NOT NULL PRIMARY KEY,
	weight REAL NOT NULL
);`

// SQLite loads a dataset from a SQLite database with tables
// members(name, class) and relationships(source, target, weight, type),
// plus an optional class_weights(class, weight). Rows are read in rowid
// order. The weight column is untyped so text and NULL weights survive.
type SQLite struct {
	Path string
}

// Name returns "sqlite:<path>".
func (s *SQLite) Name() string { return "sqlite:" + s.Path }

// Load reads the database. A missing file yields FILE_NOT_FOUND rather than
// an empty database.
func (s *SQLite) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := errors.ValidatePath(s.Path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file not found: %s", s.Path)
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.Path, err)
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, "PRAGMA query_only=ON"); err != nil {
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	members, err := scanMembers(ctx, db)
	if err != nil {
		return nil, err
	}
	rels, err := scanRelations(ctx, db)
	if err != nil {
		return nil, err
	}
	ranks, err := scanRanks(ctx, db)
	if err != nil {
		return nil, err
	}
	return assemble(members, rels, ranks), nil
}

func scanMembers(ctx context.Context, db *sql.DB) ([]memberRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, COALESCE(class, '') FROM members ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "query members")
	}
	defer rows.Close()

	var out []memberRow
	for rows.Next() {
		var m memberRow
		if err := rows.Scan(&m.name, &m.class); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "scan member")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanRelations(ctx context.Context, db *sql.DB) ([]relationRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT source, target, weight, COALESCE(type, '') FROM relationships ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "query relationships")
	}
	defer rows.Close()

	var out []relationRow
	for rows.Next() {
		var r relationRow
		if err := rows.Scan(&r.source, &r.target, &r.weight, &r.kind); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "scan relationship")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRanks(ctx context.Context, db *sql.DB) (map[string]float64, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'class_weights'`).Scan(&n)
	if err != nil || n == 0 {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT class, weight FROM class_weights`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "query class_weights")
	}
	defer rows.Close()

	ranks := make(map[string]float64)
	for rows.Next() {
		var class string
		var w float64
		if err := rows.Scan(&class, &w); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "scan class weight")
		}
		ranks[class] = w
	}
	return ranks, rows.Err()
}

// SaveSQLite writes ds into a SQLite database at path, creating the schema.
// Existing rows are replaced. Absent weights are stored as NULL and text
// weights as TEXT.
func SaveSQLite(ctx context.Context, path string, ds *dataset.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, table := range []string{"members", "relationships", "class_weights"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, m := range ds.Members {
		if _, err := tx.ExecContext(ctx, `INSERT INTO members (name, class) VALUES (?, ?)`, m.ID, m.Cohort); err != nil {
			return fmt.Errorf("insert member %q: %w", m.ID, err)
		}
	}
	for _, r := range ds.Relationships {
		if _, err := tx.ExecContext(ctx, `INSERT INTO relationships (source, target, weight, type) VALUES (?, ?, ?, ?)`,
			r.From, r.To, sqlWeight(r.Weight), r.Kind); err != nil {
			return fmt.Errorf("insert relationship %s -> %s: %w", r.From, r.To, err)
		}
	}
	for class, w := range ds.ClassWeights {
		if _, err := tx.ExecContext(ctx, `INSERT INTO class_weights (class, weight) VALUES (?, ?)`, class, w); err != nil {
			return fmt.Errorf("insert class weight %q: %w", class, err)
		}
	}
	return tx.Commit()
}

// sqlWeight maps a raw weight to the value stored in the untyped column.
func sqlWeight(w dataset.Weight) any {
	if !w.Present() {
		return nil
	}
	if f, err := w.Float(); err == nil && w.IsNumber() {
		return f
	}
	return w.String()
}
