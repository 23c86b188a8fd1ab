package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"quantumfinance/internal/dataset"
	"quantumfinance/internal/dto"
	"quantumfinance/internal/features"
	"quantumfinance/internal/models"
	"quantumfinance/internal/rules"

	"go.uber.org/zap"
)

// EmptyRecommendationsMessage is shown when no rule fires for a user.
const EmptyRecommendationsMessage = "No recommendations from the current rules for this profile."

// ErrUserNotFound is the evaluator's unknown-user error, so errors.Is
// matches both.
var ErrUserNotFound = rules.ErrUnknownUser

// state is everything derived from one dataset load. It is never mutated
// after construction.
type state struct {
	snapshot     *dataset.Snapshot
	feats        map[int]features.Record
	users        map[int]models.User
	productNames map[int]string
	spend        map[int][]dto.CategorySpend
	interactions map[int][]models.Interaction
	loadedAt     time.Time
}

func newState(snap *dataset.Snapshot, now time.Time) *state {
	st := &state{
		snapshot:     snap,
		feats:        features.Aggregate(snap.Users, snap.Transactions),
		users:        make(map[int]models.User, len(snap.Users)),
		productNames: make(map[int]string, len(snap.Products)),
		spend:        make(map[int][]dto.CategorySpend),
		interactions: make(map[int][]models.Interaction),
		loadedAt:     now,
	}
	for _, u := range snap.Users {
		st.users[u.ID] = u
	}
	for _, p := range snap.Products {
		st.productNames[p.ID] = p.Name
	}
	for _, in := range snap.Interactions {
		st.interactions[in.UserID] = append(st.interactions[in.UserID], in)
	}

	byCategory := make(map[int]map[string]float64)
	for _, tx := range snap.Transactions {
		if _, ok := st.users[tx.UserID]; !ok {
			continue
		}
		if byCategory[tx.UserID] == nil {
			byCategory[tx.UserID] = make(map[string]float64)
		}
		byCategory[tx.UserID][tx.Category] += tx.MonthlySpend
	}
	for userID, cats := range byCategory {
		parts := make([]dto.CategorySpend, 0, len(cats))
		for cat, amount := range cats {
			parts = append(parts, dto.CategorySpend{Category: cat, Amount: amount})
		}
		sort.Slice(parts, func(i, j int) bool {
			if parts[i].Amount != parts[j].Amount {
				return parts[i].Amount > parts[j].Amount
			}
			return parts[i].Category < parts[j].Category
		})
		st.spend[userID] = parts
	}
	return st
}

// RecommendationService serves the dashboard from an in-memory snapshot.
// Reload swaps the whole snapshot; readers always see one consistent load.
type RecommendationService struct {
	source    dataset.Source
	evaluator *rules.Evaluator
	logger    *zap.Logger

	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

func NewRecommendationService(source dataset.Source, evaluator *rules.Evaluator, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		source:    source,
		evaluator: evaluator,
		logger:    logger,
		state:     newState(&dataset.Snapshot{}, time.Time{}),
		now:       time.Now,
	}
}

// Load reads a new snapshot from the source and recomputes features. On
// failure the previous snapshot stays in place.
func (s *RecommendationService) Load(ctx context.Context) (*dto.DatasetStatus, error) {
	start := s.now()
	snap, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", s.source.Name(), err)
	}

	st := newState(snap, s.now())

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.logger.Info("Dataset loaded",
		zap.String("source", s.source.Name()),
		zap.Int("users", len(snap.Users)),
		zap.Int("products", len(snap.Products)),
		zap.Int("transactions", len(snap.Transactions)),
		zap.Int("interactions", len(snap.Interactions)),
		zap.Duration("took", s.now().Sub(start)),
	)

	return s.status(st), nil
}

func (s *RecommendationService) Status() *dto.DatasetStatus {
	return s.status(s.current())
}

func (s *RecommendationService) status(st *state) *dto.DatasetStatus {
	status := &dto.DatasetStatus{
		Source:       s.source.Name(),
		Users:        len(st.snapshot.Users),
		Products:     len(st.snapshot.Products),
		Transactions: len(st.snapshot.Transactions),
		Interactions: len(st.snapshot.Interactions),
	}
	if !st.loadedAt.IsZero() {
		status.LoadedAt = st.loadedAt.Format(time.RFC3339)
	}
	return status
}

func (s *RecommendationService) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ListUsers returns the users in dataset order for the selection box.
func (s *RecommendationService) ListUsers() []dto.UserSummary {
	st := s.current()
	out := make([]dto.UserSummary, 0, len(st.snapshot.Users))
	for _, u := range st.snapshot.Users {
		out = append(out, dto.UserSummary{ID: u.ID, Name: u.Name})
	}
	return out
}

func (s *RecommendationService) Products() []models.Product {
	st := s.current()
	out := make([]models.Product, len(st.snapshot.Products))
	copy(out, st.snapshot.Products)
	return out
}

func (s *RecommendationService) Profile(userID int) (*dto.ProfileResponse, error) {
	st := s.current()
	u, ok := st.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	f := st.feats[userID]

	return &dto.ProfileResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Income:         f.Income,
		CreditScore:    f.CreditScore,
		Debt:           f.Debt,
		TotalSpend:     f.TotalSpend(),
		Surplus:        f.Surplus,
		TravelSpend:    f.TravelSpend,
		TravelRatioPct: f.TravelRatio * 100,
	}, nil
}

// Recommend evaluates the rule set for userID and resolves product names.
func (s *RecommendationService) Recommend(userID int) (*dto.RecommendationsResponse, error) {
	st := s.current()
	recs, err := s.evaluator.Evaluate(userID, st.feats)
	if err != nil {
		return nil, err
	}

	resp := &dto.RecommendationsResponse{
		UserID: userID,
		Items:  make([]dto.RecommendationItem, 0, len(recs)),
	}
	for _, rec := range recs {
		resp.Items = append(resp.Items, dto.RecommendationItem{
			ProductID:     rec.ProductID,
			ProductName:   st.productName(rec.ProductID),
			Justification: rec.Justification,
		})
	}
	if len(resp.Items) == 0 {
		resp.Message = EmptyRecommendationsMessage
	}

	s.logger.Debug("Recommendations evaluated",
		zap.Int("user_id", userID),
		zap.Int("count", len(resp.Items)),
	)
	return resp, nil
}

// SpendByCategory returns the user's monthly spend per category, largest first.
func (s *RecommendationService) SpendByCategory(userID int) ([]dto.CategorySpend, error) {
	st := s.current()
	if _, ok := st.users[userID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	return st.spend[userID], nil
}

// Interactions returns the user's recorded product interactions. No rule
// consumes them.
func (s *RecommendationService) Interactions(userID int) ([]models.Interaction, error) {
	st := s.current()
	if _, ok := st.users[userID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}
	out := st.interactions[userID]
	if out == nil {
		out = []models.Interaction{}
	}
	return out, nil
}

func (st *state) productName(id int) string {
	if name, ok := st.productNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Product %d", id)
}
