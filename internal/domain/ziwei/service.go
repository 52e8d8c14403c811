package ziwei

// Service exposes the chart engine behind an interface so callers can
// substitute it in tests.
type Service interface {
	// ComputeChart builds the full natal chart for the birth facts.
	ComputeChart(facts BirthFacts) (*Chart, error)

	// RelationsOf resolves the opposite and trine palaces of a palace.
	RelationsOf(chart *Chart, palace PalaceName) (PalaceRelation, error)

	// AnalyzePatterns matches the service's catalogue against a chart.
	AnalyzePatterns(chart *Chart) ([]PatternMatch, error)

	// Patterns returns the catalogue the service matches against.
	Patterns() []Pattern
}

type defaultService struct {
	patterns []Pattern
}

// NewDefaultService creates a Service using the built-in catalogue.
func NewDefaultService() Service {
	return &defaultService{patterns: defaultCatalogue}
}

// NewServiceWithCatalogue creates a Service matching a custom catalogue.
// The catalogue goes through ValidateCatalogue first.
func NewServiceWithCatalogue(patterns []Pattern) (Service, error) {
	valid, err := ValidateCatalogue(patterns)
	if err != nil {
		return nil, err
	}
	return &defaultService{patterns: valid}, nil
}

func (s *defaultService) ComputeChart(facts BirthFacts) (*Chart, error) {
	return ComputeChart(facts)
}

func (s *defaultService) RelationsOf(chart *Chart, palace PalaceName) (PalaceRelation, error) {
	return RelationsOfName(chart, palace)
}

func (s *defaultService) AnalyzePatterns(chart *Chart) ([]PatternMatch, error) {
	return matchCatalogue(chart, s.patterns)
}

func (s *defaultService) Patterns() []Pattern {
	return append([]Pattern(nil), s.patterns...)
}
