package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// componentColumns is the canonical SELECT column list for components.
const componentColumns = `id, code, category_id, discipline_id, status, work_package_id, created_at, updated_at`

// SQLiteComponentRepo implements ComponentRepo using a SQLite database.
type SQLiteComponentRepo struct {
	db db.DBTX
}

// NewSQLiteComponentRepo creates a new SQLiteComponentRepo.
func NewSQLiteComponentRepo(db db.DBTX) *SQLiteComponentRepo {
	return &SQLiteComponentRepo{db: db}
}

func (r *SQLiteComponentRepo) Create(ctx context.Context, c *domain.Component) error {
	query := `INSERT INTO components (id, code, category_id, discipline_id, status, work_package_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Code,
		c.CategoryID,
		c.DisciplineID,
		string(c.Status),
		nullableString(c.WorkPackageID),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("component code %q already exists in category: %w", c.Code, domain.ErrValidation)
		}
		return fmt.Errorf("inserting component: %w", err)
	}
	return nil
}

// CreateBatch inserts all components or none: the bulk code import path.
// Callers run it inside a unit of work.
func (r *SQLiteComponentRepo) CreateBatch(ctx context.Context, cs []*domain.Component) error {
	for _, c := range cs {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteComponentRepo) GetByID(ctx context.Context, id string) (*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanComponentRow(row)
}

func (r *SQLiteComponentRepo) GetByCode(ctx context.Context, categoryID, code string) (*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE category_id = ? AND code = ?`
	row := r.db.QueryRowContext(ctx, query, categoryID, code)
	return scanComponentRow(row)
}

func (r *SQLiteComponentRepo) List(ctx context.Context, f ComponentFilter) ([]*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE 1=1`
	var args []any
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.DisciplineID != "" {
		query += ` AND discipline_id = ?`
		args = append(args, f.DisciplineID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.FreeOnly {
		query += ` AND work_package_id IS NULL`
	}
	if f.Search != "" {
		query += ` AND code LIKE ?`
		args = append(args, "%"+f.Search+"%")
	}
	query += ` ORDER BY code`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

func (r *SQLiteComponentRepo) ListByWorkPackage(ctx context.Context, wpID string) ([]*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE work_package_id = ? ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query, wpID)
	if err != nil {
		return nil, fmt.Errorf("listing work package components: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

func (r *SQLiteComponentRepo) Update(ctx context.Context, c *domain.Component) error {
	query := `UPDATE components SET code = ?, category_id = ?, discipline_id = ?, status = ?, work_package_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Code,
		c.CategoryID,
		c.DisciplineID,
		string(c.Status),
		nullableString(c.WorkPackageID),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating component: %w", err)
	}
	return nil
}

func (r *SQLiteComponentRepo) SetWorkPackage(ctx context.Context, id string, wpID *string) error {
	query := `UPDATE components SET work_package_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableString(wpID), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting component work package: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking component membership update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("component: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteComponentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM components WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting component: %w", err)
	}
	return nil
}

func scanComponentRow(row *sql.Row) (*domain.Component, error) {
	var c domain.Component
	var statusStr string
	var wpIDStr sql.NullString
	var createdAtStr, updatedAtStr string
	err := row.Scan(&c.ID, &c.Code, &c.CategoryID, &c.DisciplineID, &statusStr, &wpIDStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("component: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning component: %w", err)
	}
	return populateComponent(&c, statusStr, wpIDStr, createdAtStr, updatedAtStr)
}

func scanComponents(rows *sql.Rows) ([]*domain.Component, error) {
	var components []*domain.Component
	for rows.Next() {
		var c domain.Component
		var statusStr string
		var wpIDStr sql.NullString
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&c.ID, &c.Code, &c.CategoryID, &c.DisciplineID, &statusStr, &wpIDStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning component row: %w", err)
		}
		component, err := populateComponent(&c, statusStr, wpIDStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating components: %w", err)
	}
	return components, nil
}

func populateComponent(c *domain.Component, statusStr string, wpIDStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Component, error) {
	c.Status = domain.ComponentStatus(statusStr)
	c.WorkPackageID = nullStringPtr(wpIDStr)

	var err error
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return c, nil
}
