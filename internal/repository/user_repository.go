package repository

import (
	"context"
	"fmt"

	"quantumfinance/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewUserRepository(db DBTX, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func listUsersQuery() squirrel.SelectBuilder {
	return psql.Select("id", "name", "income", "credit_score", "debt").
		From("users").
		OrderBy("id")
}

func insertUsersQuery(users []models.User) squirrel.InsertBuilder {
	builder := psql.Insert("users").
		Columns("id", "name", "income", "credit_score", "debt").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, income = EXCLUDED.income, " +
			"credit_score = EXCLUDED.credit_score, debt = EXCLUDED.debt")
	for _, u := range users {
		builder = builder.Values(u.ID, u.Name, u.Income, u.CreditScore, u.Debt)
	}
	return builder
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	sql, args, err := listUsersQuery().ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Income, &u.CreditScore, &u.Debt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Users loaded", zap.Int("count", len(users)))
	return users, nil
}

// CreateBatch upserts users by id.
func (r *UserRepository) CreateBatch(ctx context.Context, users []models.User) error {
	for _, c := range chunks(len(users)) {
		if err := exec(ctx, r.db, insertUsersQuery(users[c[0]:c[1]])); err != nil {
			return fmt.Errorf("failed to insert users: %w", err)
		}
	}
	return nil
}
