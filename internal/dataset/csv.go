package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"quantumfinance/internal/models"
)

const (
	UsersFile        = "users.csv"
	ProductsFile     = "products.csv"
	TransactionsFile = "transactions.csv"
	InteractionsFile = "interactions.csv"
)

// Column aliases: Portuguese headers first, English second.
var (
	colUserID       = []string{"user_id"}
	colUserName     = []string{"nome", "name"}
	colIncome       = []string{"renda", "income"}
	colCreditScore  = []string{"score_credito", "credit_score"}
	colDebt         = []string{"dividas", "debt"}
	colProductID    = []string{"product_id"}
	colProductName  = []string{"nome_produto", "name"}
	colCategory     = []string{"categoria", "category"}
	colMonthlySpend = []string{"gasto_mensal", "monthly_spend"}
	colInteraction  = []string{"interacao", "interaction", "kind"}
)

// CSVSource reads users.csv, products.csv, transactions.csv and the
// optional interactions.csv from one directory.
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (s *CSVSource) Name() string {
	return SourceCSV
}

func (s *CSVSource) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Users, err = readFile(ctx, s.path(UsersFile), parseUser); err != nil {
		return nil, err
	}
	if snap.Products, err = readFile(ctx, s.path(ProductsFile), parseProduct); err != nil {
		return nil, err
	}
	if snap.Transactions, err = readFile(ctx, s.path(TransactionsFile), parseTransaction); err != nil {
		return nil, err
	}
	snap.Interactions, err = readFile(ctx, s.path(InteractionsFile), parseInteraction)
	if errors.Is(err, fs.ErrNotExist) {
		snap.Interactions, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

func (s *CSVSource) path(name string) string {
	return filepath.Join(s.dir, name)
}

// row resolves header names to cell values for one record.
type row struct {
	file    string
	line    int
	header  map[string]int
	records []string
}

// lookup returns the raw cell; labels are matched exactly downstream so
// only numeric cells are trimmed.
func (r row) lookup(aliases []string) (string, bool) {
	for _, a := range aliases {
		if i, ok := r.header[a]; ok && i < len(r.records) {
			return r.records[i], true
		}
	}
	return "", false
}

func (r row) str(aliases []string) (string, error) {
	v, ok := r.lookup(aliases)
	if !ok {
		return "", r.errorf(aliases[0], "missing column")
	}
	return v, nil
}

func (r row) optional(aliases []string) string {
	v, _ := r.lookup(aliases)
	return v
}

func (r row) number(aliases []string) (float64, error) {
	v, err := r.str(aliases)
	if err != nil {
		return 0, err
	}
	v = strings.TrimSpace(v)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.errorf(aliases[0], fmt.Sprintf("invalid number %q", v))
	}
	return f, nil
}

func (r row) integer(aliases []string) (int, error) {
	f, err := r.number(aliases)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, r.errorf(aliases[0], fmt.Sprintf("invalid integer %v", f))
	}
	return int(f), nil
}

func (r row) errorf(column, msg string) error {
	return fmt.Errorf("%s:%d: column %s: %s", r.file, r.line, column, msg)
}

func readFile[T any](ctx context.Context, path string, parse func(row) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	out, err := readCSV(ctx, filepath.Base(path), f, parse)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return out, nil
}

func readCSV[T any](ctx context.Context, name string, src io.Reader, parse func(row) (T, error)) ([]T, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	headerRecord, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	header := make(map[string]int, len(headerRecord))
	for i, h := range headerRecord {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		header[h] = i
	}

	var out []T
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := parse(row{file: name, line: line, header: header, records: records})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseUser(r row) (models.User, error) {
	var u models.User
	var err error
	if u.ID, err = r.integer(colUserID); err != nil {
		return u, err
	}
	u.Name = r.optional(colUserName)
	if u.Income, err = r.number(colIncome); err != nil {
		return u, err
	}
	if u.CreditScore, err = r.number(colCreditScore); err != nil {
		return u, err
	}
	if u.Debt, err = r.number(colDebt); err != nil {
		return u, err
	}
	return u, nil
}

func parseProduct(r row) (models.Product, error) {
	var p models.Product
	var err error
	if p.ID, err = r.integer(colProductID); err != nil {
		return p, err
	}
	p.Name, err = r.str(colProductName)
	return p, err
}

func parseTransaction(r row) (models.Transaction, error) {
	var tx models.Transaction
	var err error
	if tx.UserID, err = r.integer(colUserID); err != nil {
		return tx, err
	}
	if tx.Category, err = r.str(colCategory); err != nil {
		return tx, err
	}
	tx.MonthlySpend, err = r.number(colMonthlySpend)
	return tx, err
}

func parseInteraction(r row) (models.Interaction, error) {
	var in models.Interaction
	var err error
	if in.UserID, err = r.integer(colUserID); err != nil {
		return in, err
	}
	if in.ProductID, err = r.integer(colProductID); err != nil {
		return in, err
	}
	in.Kind = r.optional(colInteraction)
	return in, nil
}
