package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/generation"
	"github.com/phrazzld/ziwei-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// UserService is a testify mock of service.UserService.
type UserService struct {
	mock.Mock
}

var _ service.UserService = (*UserService)(nil)

func (m *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *UserService) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// ProfileService is a testify mock of service.ProfileService.
type ProfileService struct {
	mock.Mock
}

var _ service.ProfileService = (*ProfileService)(nil)

func (m *ProfileService) CreateProfile(
	ctx context.Context,
	userID uuid.UUID,
	facts domain.ProfileFacts,
) (*domain.Profile, error) {
	args := m.Called(ctx, userID, facts)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *ProfileService) GetProfile(ctx context.Context, userID, profileID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID, profileID)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *ProfileService) ListProfiles(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	args := m.Called(ctx, userID)
	profiles, _ := args.Get(0).([]*domain.Profile)
	return profiles, args.Error(1)
}

func (m *ProfileService) UpdateProfile(
	ctx context.Context,
	userID, profileID uuid.UUID,
	facts domain.ProfileFacts,
) (*domain.Profile, error) {
	args := m.Called(ctx, userID, profileID, facts)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *ProfileService) DeleteProfile(ctx context.Context, userID, profileID uuid.UUID) error {
	return m.Called(ctx, userID, profileID).Error(0)
}

// ReadingService is a testify mock of service.ReadingService.
type ReadingService struct {
	mock.Mock
}

var _ service.ReadingService = (*ReadingService)(nil)

func (m *ReadingService) GetReading(ctx context.Context, readingID uuid.UUID) (*domain.Reading, error) {
	args := m.Called(ctx, readingID)
	reading, _ := args.Get(0).(*domain.Reading)
	return reading, args.Error(1)
}

func (m *ReadingService) UpdateReadingStatus(
	ctx context.Context,
	readingID uuid.UUID,
	status domain.ReadingStatus,
) error {
	return m.Called(ctx, readingID, status).Error(0)
}

func (m *ReadingService) CompleteReading(ctx context.Context, readingID uuid.UUID, content string) error {
	return m.Called(ctx, readingID, content).Error(0)
}

func (m *ReadingService) RequestReading(ctx context.Context, userID, profileID uuid.UUID) (*domain.Reading, error) {
	args := m.Called(ctx, userID, profileID)
	reading, _ := args.Get(0).(*domain.Reading)
	return reading, args.Error(1)
}

func (m *ReadingService) GetUserReading(ctx context.Context, userID, readingID uuid.UUID) (*domain.Reading, error) {
	args := m.Called(ctx, userID, readingID)
	reading, _ := args.Get(0).(*domain.Reading)
	return reading, args.Error(1)
}

// ChartService is a testify mock of service.ChartService.
type ChartService struct {
	mock.Mock
}

var _ service.ChartService = (*ChartService)(nil)

func (m *ChartService) ComputeChart(ctx context.Context, facts ziwei.BirthFacts) (*ziwei.Chart, error) {
	args := m.Called(ctx, facts)
	chart, _ := args.Get(0).(*ziwei.Chart)
	return chart, args.Error(1)
}

func (m *ChartService) RelationsOf(
	ctx context.Context,
	facts ziwei.BirthFacts,
	palace ziwei.PalaceName,
) (*ziwei.Chart, ziwei.PalaceRelation, error) {
	args := m.Called(ctx, facts, palace)
	chart, _ := args.Get(0).(*ziwei.Chart)
	rel, _ := args.Get(1).(ziwei.PalaceRelation)
	return chart, rel, args.Error(2)
}

func (m *ChartService) AnalyzePatterns(
	ctx context.Context,
	facts ziwei.BirthFacts,
) (*ziwei.Chart, []ziwei.PatternMatch, error) {
	args := m.Called(ctx, facts)
	chart, _ := args.Get(0).(*ziwei.Chart)
	matches, _ := args.Get(1).([]ziwei.PatternMatch)
	return chart, matches, args.Error(2)
}

func (m *ChartService) ProfileChart(ctx context.Context, userID, profileID uuid.UUID) (*ziwei.Chart, error) {
	args := m.Called(ctx, userID, profileID)
	chart, _ := args.Get(0).(*ziwei.Chart)
	return chart, args.Error(1)
}

func (m *ChartService) ProfileRelations(
	ctx context.Context,
	userID, profileID uuid.UUID,
	palace ziwei.PalaceName,
) (*ziwei.Chart, ziwei.PalaceRelation, error) {
	args := m.Called(ctx, userID, profileID, palace)
	chart, _ := args.Get(0).(*ziwei.Chart)
	rel, _ := args.Get(1).(ziwei.PalaceRelation)
	return chart, rel, args.Error(2)
}

func (m *ChartService) ProfilePatterns(
	ctx context.Context,
	userID, profileID uuid.UUID,
) (*ziwei.Chart, []ziwei.PatternMatch, error) {
	args := m.Called(ctx, userID, profileID)
	chart, _ := args.Get(0).(*ziwei.Chart)
	matches, _ := args.Get(1).([]ziwei.PatternMatch)
	return chart, matches, args.Error(2)
}

func (m *ChartService) ProfileCharts(ctx context.Context, userID uuid.UUID) ([]service.ProfileChart, error) {
	args := m.Called(ctx, userID)
	charts, _ := args.Get(0).([]service.ProfileChart)
	return charts, args.Error(1)
}

func (m *ChartService) ReadingRequest(
	ctx context.Context,
	reading *domain.Reading,
) (generation.ReadingRequest, error) {
	args := m.Called(ctx, reading)
	req, _ := args.Get(0).(generation.ReadingRequest)
	return req, args.Error(1)
}
