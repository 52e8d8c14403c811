package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/generation"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// ProfileChart is one entry of a batch chart computation. A profile that
// cannot be charted carries Error instead of Chart.
type ProfileChart struct {
	Profile *domain.Profile `json:"profile"`
	Chart   *ziwei.Chart    `json:"chart,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ChartService computes charts, palace relations and pattern matches,
// either from birth facts supplied by the caller or from a stored
// profile the caller owns.
type ChartService interface {
	ComputeChart(ctx context.Context, facts ziwei.BirthFacts) (*ziwei.Chart, error)
	RelationsOf(
		ctx context.Context,
		facts ziwei.BirthFacts,
		palace ziwei.PalaceName,
	) (*ziwei.Chart, ziwei.PalaceRelation, error)
	AnalyzePatterns(ctx context.Context, facts ziwei.BirthFacts) (*ziwei.Chart, []ziwei.PatternMatch, error)

	ProfileChart(ctx context.Context, userID, profileID uuid.UUID) (*ziwei.Chart, error)
	ProfileRelations(
		ctx context.Context,
		userID, profileID uuid.UUID,
		palace ziwei.PalaceName,
	) (*ziwei.Chart, ziwei.PalaceRelation, error)
	ProfilePatterns(ctx context.Context, userID, profileID uuid.UUID) (*ziwei.Chart, []ziwei.PatternMatch, error)

	// ProfileCharts computes a chart for every profile the user owns, at
	// most maxParallel at a time. Results keep the store's order.
	ProfileCharts(ctx context.Context, userID uuid.UUID) ([]ProfileChart, error)

	// ReadingRequest builds generator input for a stored reading.
	ReadingRequest(ctx context.Context, reading *domain.Reading) (generation.ReadingRequest, error)
}

type chartService struct {
	engine      ziwei.Service
	profiles    store.ProfileStore
	maxParallel int
	logger      *slog.Logger
}

// NewChartService creates a ChartService. maxParallel below 1 is treated
// as 1.
func NewChartService(
	engine ziwei.Service,
	profiles store.ProfileStore,
	maxParallel int,
	log *slog.Logger,
) ChartService {
	return &chartService{
		engine:      engine,
		profiles:    profiles,
		maxParallel: max(maxParallel, 1),
		logger:      log.With("component", "chart_service"),
	}
}

// isInputError reports whether err is the caller's fault rather than an
// engine defect.
func isInputError(err error) bool {
	return errors.Is(err, ziwei.ErrInvalidInput) || errors.Is(err, ziwei.ErrInvalidSymbol)
}

func (s *chartService) compute(ctx context.Context, facts ziwei.BirthFacts) (*ziwei.Chart, error) {
	chart, err := s.engine.ComputeChart(facts)
	if err != nil {
		if errors.Is(err, ziwei.ErrLookupMiss) {
			logger.FromContextOrDefault(ctx, s.logger).Error("chart engine table miss",
				"error", err,
				"lunar_month", facts.LunarMonth,
				"lunar_day", facts.LunarDay,
				"hour", facts.Hour,
				"year", facts.Year)
		}
		return nil, err
	}
	return chart, nil
}

func (s *chartService) ComputeChart(ctx context.Context, facts ziwei.BirthFacts) (*ziwei.Chart, error) {
	return s.compute(ctx, facts)
}

func (s *chartService) RelationsOf(
	ctx context.Context,
	facts ziwei.BirthFacts,
	palace ziwei.PalaceName,
) (*ziwei.Chart, ziwei.PalaceRelation, error) {
	chart, err := s.compute(ctx, facts)
	if err != nil {
		return nil, ziwei.PalaceRelation{}, err
	}
	rel, err := s.engine.RelationsOf(chart, palace)
	if err != nil {
		return nil, ziwei.PalaceRelation{}, err
	}
	return chart, rel, nil
}

func (s *chartService) AnalyzePatterns(
	ctx context.Context,
	facts ziwei.BirthFacts,
) (*ziwei.Chart, []ziwei.PatternMatch, error) {
	chart, err := s.compute(ctx, facts)
	if err != nil {
		return nil, nil, err
	}
	matches, err := s.engine.AnalyzePatterns(chart)
	if err != nil {
		return nil, nil, err
	}
	return chart, matches, nil
}

// profileFacts loads an owned profile and converts it to engine input.
func (s *chartService) profileFacts(ctx context.Context, userID, profileID uuid.UUID) (ziwei.BirthFacts, error) {
	profile, err := ownedProfile(ctx, s.profiles, userID, profileID)
	if err != nil {
		return ziwei.BirthFacts{}, wrapError("chart", "load_profile", err)
	}
	return profile.BirthFacts()
}

func (s *chartService) ProfileChart(ctx context.Context, userID, profileID uuid.UUID) (*ziwei.Chart, error) {
	facts, err := s.profileFacts(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, facts)
}

func (s *chartService) ProfileRelations(
	ctx context.Context,
	userID, profileID uuid.UUID,
	palace ziwei.PalaceName,
) (*ziwei.Chart, ziwei.PalaceRelation, error) {
	facts, err := s.profileFacts(ctx, userID, profileID)
	if err != nil {
		return nil, ziwei.PalaceRelation{}, err
	}
	return s.RelationsOf(ctx, facts, palace)
}

func (s *chartService) ProfilePatterns(
	ctx context.Context,
	userID, profileID uuid.UUID,
) (*ziwei.Chart, []ziwei.PatternMatch, error) {
	facts, err := s.profileFacts(ctx, userID, profileID)
	if err != nil {
		return nil, nil, err
	}
	return s.AnalyzePatterns(ctx, facts)
}

// ProfileCharts fans the profiles out over an errgroup. Incomplete or
// invalid profiles are reported per entry; any other engine error
// cancels the batch.
func (s *chartService) ProfileCharts(ctx context.Context, userID uuid.UUID) ([]ProfileChart, error) {
	profiles, err := s.profiles.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapError("chart", "list_profiles", err)
	}

	results := make([]ProfileChart, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i, profile := range profiles {
		results[i].Profile = profile
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			facts, err := profile.BirthFacts()
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			chart, err := s.compute(gctx, facts)
			switch {
			case err == nil:
				results[i].Chart = chart
			case isInputError(err):
				results[i].Error = err.Error()
			default:
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, NewServiceError("chart", "profile_charts", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("computed profile charts",
		"user_id", userID,
		"count", len(results))
	return results, nil
}

// ReadingRequest loads the reading's profile without an ownership check;
// the reading itself was created by the owner.
func (s *chartService) ReadingRequest(
	ctx context.Context,
	reading *domain.Reading,
) (generation.ReadingRequest, error) {
	profile, err := s.profiles.GetByID(ctx, reading.ProfileID)
	if err != nil {
		return generation.ReadingRequest{}, wrapError("chart", "reading_request", err)
	}
	facts, err := profile.BirthFacts()
	if err != nil {
		return generation.ReadingRequest{}, err
	}
	chart, matches, err := s.AnalyzePatterns(ctx, facts)
	if err != nil {
		return generation.ReadingRequest{}, err
	}
	return generation.ReadingRequest{
		ProfileName: profile.Name,
		Chart:       chart,
		Patterns:    matches,
	}, nil
}
