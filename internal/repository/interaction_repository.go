package repository

import (
	"context"
	"fmt"

	"quantumfinance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type InteractionRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewInteractionRepository(db DBTX, logger *zap.Logger) *InteractionRepository {
	return &InteractionRepository{
		db:     db,
		logger: logger,
	}
}

func listInteractionsQuery() squirrel.SelectBuilder {
	return psql.Select("user_id", "product_id", "kind").
		From("interactions").
		OrderBy("user_id", "id")
}

func insertInteractionsQuery(interactions []models.Interaction) squirrel.InsertBuilder {
	builder := psql.Insert("interactions").
		Columns("user_id", "product_id", "kind")
	for _, in := range interactions {
		builder = builder.Values(in.UserID, in.ProductID, in.Kind)
	}
	return builder
}

func (r *InteractionRepository) List(ctx context.Context) ([]models.Interaction, error) {
	sql, args, err := listInteractionsQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(&in.UserID, &in.ProductID, &in.Kind); err != nil {
			return nil, err
		}
		interactions = append(interactions, in)
	}
	return interactions, rows.Err()
}

func (r *InteractionRepository) CreateBatch(ctx context.Context, interactions []models.Interaction) error {
	for _, c := range chunks(len(interactions)) {
		if err := exec(ctx, r.db, insertInteractionsQuery(interactions[c[0]:c[1]])); err != nil {
			return fmt.Errorf("failed to insert interactions: %w", err)
		}
	}
	return nil
}

func (r *InteractionRepository) DeleteAll(ctx context.Context) error {
	return exec(ctx, r.db, psql.Delete("interactions"))
}
