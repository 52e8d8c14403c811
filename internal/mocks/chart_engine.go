package mocks

import (
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/stretchr/testify/mock"
)

// ChartEngine is a testify mock of ziwei.Service.
type ChartEngine struct {
	mock.Mock
}

var _ ziwei.Service = (*ChartEngine)(nil)

func (m *ChartEngine) ComputeChart(facts ziwei.BirthFacts) (*ziwei.Chart, error) {
	args := m.Called(facts)
	chart, _ := args.Get(0).(*ziwei.Chart)
	return chart, args.Error(1)
}

func (m *ChartEngine) RelationsOf(chart *ziwei.Chart, palace ziwei.PalaceName) (ziwei.PalaceRelation, error) {
	args := m.Called(chart, palace)
	rel, _ := args.Get(0).(ziwei.PalaceRelation)
	return rel, args.Error(1)
}

func (m *ChartEngine) AnalyzePatterns(chart *ziwei.Chart) ([]ziwei.PatternMatch, error) {
	args := m.Called(chart)
	matches, _ := args.Get(0).([]ziwei.PatternMatch)
	return matches, args.Error(1)
}

func (m *ChartEngine) Patterns() []ziwei.Pattern {
	patterns, _ := m.Called().Get(0).([]ziwei.Pattern)
	return patterns
}
