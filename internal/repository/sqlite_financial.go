package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteFinancialRepo struct {
	db db.DBTX
}

func NewSQLiteFinancialRepo(conn db.DBTX) *SQLiteFinancialRepo {
	return &SQLiteFinancialRepo{db: conn}
}

const financialColumns = `id, project_id, category, budget_amount, committed_amount, actual_amount, created_at, updated_at`

func (r *SQLiteFinancialRepo) Create(ctx context.Context, f *domain.Financial) error {
	query := `INSERT INTO financials (` + financialColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.ProjectID, f.Category, f.BudgetAmount, f.CommittedAmount, f.ActualAmount,
		f.CreatedAt.Format(time.RFC3339), f.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting financial: %w", err)
	}
	return nil
}

func (r *SQLiteFinancialRepo) GetByID(ctx context.Context, id string) (*domain.Financial, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+financialColumns+` FROM financials WHERE id = ?`, id)
	return scanFinancial(row)
}

func (r *SQLiteFinancialRepo) List(ctx context.Context, projectID string) ([]*domain.Financial, error) {
	query, args := byProject(`SELECT `+financialColumns+` FROM financials`, projectID, "project_id, category")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing financials: %w", err)
	}
	return collect(rows, "financials", scanFinancial)
}

func (r *SQLiteFinancialRepo) Update(ctx context.Context, f *domain.Financial) error {
	query := `UPDATE financials SET category = ?, budget_amount = ?, committed_amount = ?, actual_amount = ?,
		updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		f.Category, f.BudgetAmount, f.CommittedAmount, f.ActualAmount, f.UpdatedAt.Format(time.RFC3339), f.ID)
	if err != nil {
		return fmt.Errorf("updating financial: %w", err)
	}
	return expectAffected(res, "financial")
}

func (r *SQLiteFinancialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM financials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting financial: %w", err)
	}
	return expectAffected(res, "financial")
}

func scanFinancial(row rowScanner) (*domain.Financial, error) {
	var f domain.Financial
	var createdAtStr, updatedAtStr string
	err := row.Scan(&f.ID, &f.ProjectID, &f.Category, &f.BudgetAmount, &f.CommittedAmount,
		&f.ActualAmount, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, notFound(err, "financial")
	}
	if f.CreatedAt, f.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &f, nil
}
