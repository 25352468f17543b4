package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// SQLiteSquadRepo implements SquadRepo using a SQLite database.
type SQLiteSquadRepo struct {
	db db.DBTX
}

// NewSQLiteSquadRepo creates a new SQLiteSquadRepo.
func NewSQLiteSquadRepo(db db.DBTX) *SQLiteSquadRepo {
	return &SQLiteSquadRepo{db: db}
}

func (r *SQLiteSquadRepo) Create(ctx context.Context, s *domain.Squad) error {
	query := `INSERT INTO squads (id, name, foreman, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Foreman,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting squad: %w", err)
	}
	return nil
}

func (r *SQLiteSquadRepo) GetByID(ctx context.Context, id string) (*domain.Squad, error) {
	query := `SELECT id, name, foreman, created_at, updated_at FROM squads WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanSquad(row)
}

func (r *SQLiteSquadRepo) List(ctx context.Context) ([]*domain.Squad, error) {
	query := `SELECT id, name, foreman, created_at, updated_at FROM squads ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing squads: %w", err)
	}
	defer rows.Close()

	var squads []*domain.Squad
	for rows.Next() {
		var s domain.Squad
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&s.ID, &s.Name, &s.Foreman, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning squad row: %w", err)
		}
		if err := parseSquadTimes(&s, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		squads = append(squads, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating squads: %w", err)
	}
	return squads, nil
}

func (r *SQLiteSquadRepo) Update(ctx context.Context, s *domain.Squad) error {
	query := `UPDATE squads SET name = ?, foreman = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, s.Name, s.Foreman, s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating squad: %w", err)
	}
	return nil
}

func (r *SQLiteSquadRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM squads WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting squad: %w", err)
	}
	return nil
}

func (r *SQLiteSquadRepo) scanSquad(row *sql.Row) (*domain.Squad, error) {
	var s domain.Squad
	var createdAtStr, updatedAtStr string
	err := row.Scan(&s.ID, &s.Name, &s.Foreman, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("squad: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning squad: %w", err)
	}
	if err := parseSquadTimes(&s, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}

func parseSquadTimes(s *domain.Squad, createdAtStr, updatedAtStr string) error {
	var err error
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
