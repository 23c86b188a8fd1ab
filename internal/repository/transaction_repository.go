package repository

import (
	"context"
	"fmt"

	"quantumfinance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewTransactionRepository(db DBTX, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func listTransactionsQuery() squirrel.SelectBuilder {
	return psql.Select("user_id", "category", "monthly_spend").
		From("transactions").
		OrderBy("user_id", "id")
}

func insertTransactionsQuery(transactions []models.Transaction) squirrel.InsertBuilder {
	builder := psql.Insert("transactions").
		Columns("user_id", "category", "monthly_spend")
	for _, tx := range transactions {
		builder = builder.Values(tx.UserID, tx.Category, tx.MonthlySpend)
	}
	return builder
}

func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	sql, args, err := listTransactionsQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.UserID, &tx.Category, &tx.MonthlySpend); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Transactions loaded", zap.Int("count", len(transactions)))
	return transactions, nil
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []models.Transaction) error {
	for _, c := range chunks(len(transactions)) {
		if err := exec(ctx, r.db, insertTransactionsQuery(transactions[c[0]:c[1]])); err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
	}
	return nil
}

// DeleteAll clears the table; transactions have no natural key to upsert on.
func (r *TransactionRepository) DeleteAll(ctx context.Context) error {
	return exec(ctx, r.db, psql.Delete("transactions"))
}
