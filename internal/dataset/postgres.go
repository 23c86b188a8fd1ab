package dataset

import (
	"context"
	"fmt"

	"quantumfinance/internal/models"
)

type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]models.Product, error)
}

type TransactionLister interface {
	List(ctx context.Context) ([]models.Transaction, error)
}

type InteractionLister interface {
	List(ctx context.Context) ([]models.Interaction, error)
}

// PostgresSource reads the snapshot through the table repositories.
type PostgresSource struct {
	users        UserLister
	products     ProductLister
	transactions TransactionLister
	interactions InteractionLister
}

func NewPostgresSource(
	users UserLister,
	products ProductLister,
	transactions TransactionLister,
	interactions InteractionLister,
) *PostgresSource {
	return &PostgresSource{
		users:        users,
		products:     products,
		transactions: transactions,
		interactions: interactions,
	}
}

func (s *PostgresSource) Name() string {
	return SourcePostgres
}

func (s *PostgresSource) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Users, err = s.users.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if snap.Products, err = s.products.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if snap.Transactions, err = s.transactions.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if snap.Interactions, err = s.interactions.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	return &snap, nil
}
