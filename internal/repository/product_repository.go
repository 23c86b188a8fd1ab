package repository

import (
	"context"
	"fmt"

	"quantumfinance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type ProductRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewProductRepository(db DBTX, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func listProductsQuery() squirrel.SelectBuilder {
	return psql.Select("id", "name").
		From("products").
		OrderBy("id")
}

func insertProductsQuery(products []models.Product) squirrel.InsertBuilder {
	builder := psql.Insert("products").
		Columns("id", "name").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name")
	for _, p := range products {
		builder = builder.Values(p.ID, p.Name)
	}
	return builder
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	sql, args, err := listProductsQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CreateBatch(ctx context.Context, products []models.Product) error {
	for _, c := range chunks(len(products)) {
		if err := exec(ctx, r.db, insertProductsQuery(products[c[0]:c[1]])); err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}
	}
	return nil
}
