package dataset

import (
	"context"
	"errors"
	"testing"

	"quantumfinance/internal/models"
)

type stubUsers struct {
	users []models.User
	err   error
}

func (s stubUsers) List(context.Context) ([]models.User, error) { return s.users, s.err }

type stubProducts []models.Product

func (s stubProducts) List(context.Context) ([]models.Product, error) { return s, nil }

type stubTransactions []models.Transaction

func (s stubTransactions) List(context.Context) ([]models.Transaction, error) { return s, nil }

type stubInteractions []models.Interaction

func (s stubInteractions) List(context.Context) ([]models.Interaction, error) { return s, nil }

func TestPostgresSource_Load(t *testing.T) {
	src := NewPostgresSource(
		stubUsers{users: []models.User{{ID: 1, Income: 100}}},
		stubProducts{{ID: 103, Name: "CD"}},
		stubTransactions{{UserID: 1, Category: "travel", MonthlySpend: 10}},
		stubInteractions{{UserID: 1, ProductID: 103}},
	)

	snap, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if len(snap.Users) != 1 || len(snap.Products) != 1 || len(snap.Transactions) != 1 || len(snap.Interactions) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if src.Name() != SourcePostgres {
		t.Errorf("Name() = %q", src.Name())
	}
}

func TestPostgresSource_LoadError(t *testing.T) {
	boom := errors.New("connection refused")
	src := NewPostgresSource(stubUsers{err: boom}, stubProducts{}, stubTransactions{}, stubInteractions{})

	if _, err := src.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Load() err=%v, want wrapped %v", err, boom)
	}
}
