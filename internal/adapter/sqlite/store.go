// Package sqlite persists filled base masks so that changing only the
// aggregation target does not require fetching and filling again.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/couchcryptid/landmask-etl/internal/domain"
	_ "modernc.org/sqlite"
)

// Store implements pipeline.MaskStore on a SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS base_masks (
			resolution INTEGER PRIMARY KEY,
			rows INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			cells BLOB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadMask returns the mask stored for resolution, or false if none is stored.
func (s *Store) LoadMask(ctx context.Context, resolution int) (domain.Mask, bool, error) {
	var (
		shape domain.Shape
		cells []byte
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT rows, cols, cells FROM base_masks WHERE resolution = ?", resolution,
	).Scan(&shape.Rows, &shape.Cols, &cells)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Mask{}, false, nil
	}
	if err != nil {
		return domain.Mask{}, false, fmt.Errorf("load base mask %d: %w", resolution, err)
	}

	mask, err := domain.MaskFromCells(shape, cells)
	if err != nil {
		return domain.Mask{}, false, fmt.Errorf("decode base mask %d: %w", resolution, err)
	}
	return mask, true, nil
}

// SaveMask replaces the mask stored for resolution.
func (s *Store) SaveMask(ctx context.Context, resolution int, mask domain.Mask) error {
	shape := mask.Shape()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO base_masks (resolution, rows, cols, cells, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(resolution) DO UPDATE SET
			rows = excluded.rows,
			cols = excluded.cols,
			cells = excluded.cells,
			updated_at = excluded.updated_at`,
		resolution, shape.Rows, shape.Cols, mask.Cells(),
	)
	if err != nil {
		return fmt.Errorf("save base mask %d: %w", resolution, err)
	}
	return nil
}

// Resolutions lists the resolutions with a stored mask, ascending.
func (s *Store) Resolutions(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT resolution FROM base_masks ORDER BY resolution")
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
