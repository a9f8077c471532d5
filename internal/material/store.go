// Package material serves static chapter summaries and a keyword tutor over
// them.
package material

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mind-engage/reasoned/internal/db"
)

var ErrNotFound = errors.New("material not found")

type Summary struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject"`
	Chapter string `json:"chapter"`
}

type Material struct {
	ID       int64  `json:"id"`
	Subject  string `json:"subject"`
	Chapter  string `json:"chapter"`
	Summary  string `json:"summary"`
	Formulas string `json:"formulas"`
	Examples string `json:"examples"`
}

type Store struct {
	db *sql.DB
}

func NewStore(sqlDB *sql.DB) *Store { return &Store{db: sqlDB} }

// List returns the chapters of subject ordered by id.
func (s *Store) List(ctx context.Context, subject string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, chapter FROM materials WHERE subject=$1 ORDER BY id`,
		strings.ToUpper(strings.TrimSpace(subject)))
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var m Summary
		if err := rows.Scan(&m.ID, &m.Subject, &m.Chapter); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Material, error) {
	var m Material
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject, chapter, summary, formulas, examples FROM materials WHERE id=$1`, id).
		Scan(&m.ID, &m.Subject, &m.Chapter, &m.Summary, &m.Formulas, &m.Examples)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Material{}, err
	}
	return m, nil
}

// Replace swaps the whole table for items in one transaction.
func (s *Store) Replace(ctx context.Context, items []Material) error {
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM materials`); err != nil {
			return err
		}
		for _, m := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO materials (subject, chapter, summary, formulas, examples) VALUES ($1,$2,$3,$4,$5)`,
				strings.ToUpper(m.Subject), m.Chapter, m.Summary, m.Formulas, m.Examples)
			if err != nil {
				return fmt.Errorf("insert %s/%s: %w", m.Subject, m.Chapter, err)
			}
		}
		return nil
	})
}
