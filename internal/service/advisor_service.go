package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quantumfinance/internal/dto"

	"go.uber.org/zap"
)

var ErrAdvisorDisabled = errors.New("advisor is disabled")

// AdvisorService rewrites the rule engine's output as a short narrative.
// It never changes which products are recommended.
type AdvisorService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewAdvisorService accepts a nil generator; Advise then reports
// ErrAdvisorDisabled.
func NewAdvisorService(generator TextGenerator, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		generator: generator,
		logger:    logger,
	}
}

func (s *AdvisorService) Enabled() bool {
	return s.generator != nil
}

func (s *AdvisorService) Advise(ctx context.Context, profile *dto.ProfileResponse, recs *dto.RecommendationsResponse) (string, error) {
	if s.generator == nil {
		return "", ErrAdvisorDisabled
	}

	text, err := s.generator.Generate(ctx, buildAdvicePrompt(profile, recs))
	if err != nil {
		s.logger.Warn("Advisor generation failed",
			zap.Int("user_id", profile.UserID),
			zap.Error(err),
		)
		return "", err
	}
	return strings.TrimSpace(strings.ToValidUTF8(text, "")), nil
}

func buildAdvicePrompt(profile *dto.ProfileResponse, recs *dto.RecommendationsResponse) string {
	var b strings.Builder

	b.WriteString("Customer profile:\n")
	fmt.Fprintf(&b, "- Income: R$%.2f\n", profile.Income)
	fmt.Fprintf(&b, "- Credit score: %.0f\n", profile.CreditScore)
	fmt.Fprintf(&b, "- Debt: R$%.2f\n", profile.Debt)
	fmt.Fprintf(&b, "- Monthly spend: R$%.2f\n", profile.TotalSpend)
	fmt.Fprintf(&b, "- Monthly surplus: R$%.2f\n", profile.Surplus)
	fmt.Fprintf(&b, "- Travel spend: R$%.2f (%.1f%% of income)\n", profile.TravelSpend, profile.TravelRatioPct)

	b.WriteString("\nSelected products:\n")
	if len(recs.Items) == 0 {
		b.WriteString("(none)\n")
	}
	for i, item := range recs.Items {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, item.ProductName, item.Justification)
	}

	return b.String()
}
