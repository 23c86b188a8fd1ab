// Package charts renders dashboard widgets as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"quantumfinance/internal/dto"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 800
	chartHeight = 500
)

// ChartGenerator renders per-user spending widgets.
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// SpendValues turns category totals into pie slices, skipping categories
// without positive spend.
func SpendValues(spend []dto.CategorySpend) []chart.Value {
	var total float64
	for _, s := range spend {
		if s.Amount > 0 {
			total += s.Amount
		}
	}

	values := make([]chart.Value, 0, len(spend))
	for _, s := range spend {
		if s.Amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: R$%.0f (%.1f%%)", s.Category, s.Amount, s.Amount/total*100),
			Value: s.Amount,
		})
	}
	return values
}

// GenerateSpendChart returns nil without error when there is nothing to draw.
func (g *ChartGenerator) GenerateSpendChart(spend []dto.CategorySpend) ([]byte, error) {
	values := SpendValues(spend)
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render spend chart: %w", err)
	}

	return buffer.Bytes(), nil
}
