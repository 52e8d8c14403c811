package generation

import (
	"context"

	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
)

// ReadingRequest is everything a generator needs to interpret one chart.
type ReadingRequest struct {
	ProfileName string
	Chart       *ziwei.Chart
	Patterns    []ziwei.PatternMatch
}

// Generator turns a computed chart into a written reading.
type Generator interface {
	// GenerateReading returns the reading text for the request.
	// Errors wrap the sentinels in errors.go.
	GenerateReading(ctx context.Context, req ReadingRequest) (string, error)
}
