// Package dataset loads the four record collections the dashboard works on.
package dataset

import (
	"context"
	"errors"
	"fmt"

	"quantumfinance/internal/models"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

var ErrUnknownSource = errors.New("unknown data source")

// Snapshot is one consistent load of the upstream tables.
type Snapshot struct {
	Users        []models.User
	Products     []models.Product
	Transactions []models.Transaction
	Interactions []models.Interaction
}

// Source loads a fresh snapshot on every call.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
	Name() string
}

// ValidateSourceName rejects anything but the supported source kinds.
func ValidateSourceName(name string) error {
	switch name {
	case SourceCSV, SourcePostgres:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}
