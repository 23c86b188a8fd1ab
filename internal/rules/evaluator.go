package rules

import (
	"errors"
	"fmt"

	"quantumfinance/internal/features"
)

// ErrUnknownUser means no feature record exists for the requested user.
var ErrUnknownUser = errors.New("unknown user")

type Evaluator struct {
	rules []Rule
}

// NewEvaluator runs the given rules in order. With no rules it uses Default.
func NewEvaluator(rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = Default()
	}
	return &Evaluator{rules: rules}
}

// Rules returns the rule names in evaluation order.
func (e *Evaluator) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Evaluate returns the ordered, duplicate-free recommendations for userID.
// An empty result is not an error.
func (e *Evaluator) Evaluate(userID int, feats map[int]features.Record) ([]Recommendation, error) {
	f, ok := feats[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUser, userID)
	}
	return e.EvaluateRecord(f), nil
}

// EvaluateRecord applies every rule to f.
func (e *Evaluator) EvaluateRecord(f features.Record) []Recommendation {
	var all []Recommendation
	for _, r := range e.rules {
		all = append(all, r.Apply(f)...)
	}
	return Dedupe(all)
}

// Dedupe keeps the first recommendation per product id, in first-seen order.
func Dedupe(recs []Recommendation) []Recommendation {
	seen := make(map[int]struct{}, len(recs))
	out := make([]Recommendation, 0, len(recs))
	for _, rec := range recs {
		if _, dup := seen[rec.ProductID]; dup {
			continue
		}
		seen[rec.ProductID] = struct{}{}
		out = append(out, rec)
	}
	return out
}
