package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization.
	AccessToken string `json:"token"`

	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the RFC 3339 time the access token expires.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// BirthFactsRequest carries lunar birth facts produced by a calendar
// converter. Hour is a branch symbol or its pinyin; Year is a
// stem-branch pair such as "庚午".
type BirthFactsRequest struct {
	LunarYear  int    `json:"lunar_year"  validate:"required,gte=1"`
	LunarMonth int    `json:"lunar_month" validate:"required,gte=1,lte=12"`
	LunarDay   int    `json:"lunar_day"   validate:"required,gte=1,lte=30"`
	Hour       string `json:"hour"        validate:"required"`
	Year       string `json:"year"        validate:"required"`
}

// Facts converts the request into engine input. Unknown symbols fail
// with ziwei.ErrInvalidSymbol.
func (req BirthFactsRequest) Facts() (ziwei.BirthFacts, error) {
	hour, err := ziwei.ParseBranch(req.Hour)
	if err != nil {
		return ziwei.BirthFacts{}, err
	}
	year, err := ziwei.ParseStemBranch(req.Year)
	if err != nil {
		return ziwei.BirthFacts{}, err
	}
	return ziwei.BirthFacts{
		LunarYear:  req.LunarYear,
		LunarMonth: req.LunarMonth,
		LunarDay:   req.LunarDay,
		Hour:       hour,
		Year:       year,
	}, nil
}

// RelationsRequest asks for the relation set of one palace. Palace is a
// palace name, its Chinese label or an ordinal.
type RelationsRequest struct {
	BirthFactsRequest
	Palace string `json:"palace" validate:"required"`
}

// ProfileRequest defines the payload for creating or updating a birth
// profile. Year may be omitted until the calendar converter supplies it.
type ProfileRequest struct {
	Name       string `json:"name"        validate:"required,max=100"`
	LunarYear  int    `json:"lunar_year"  validate:"required,gte=1"`
	LunarMonth int    `json:"lunar_month" validate:"required,gte=1,lte=12"`
	LunarDay   int    `json:"lunar_day"   validate:"required,gte=1,lte=30"`
	Hour       string `json:"hour"        validate:"required"`
	Year       string `json:"year,omitempty"`
}

// Facts converts the request into profile facts.
func (req ProfileRequest) Facts() (domain.ProfileFacts, error) {
	hour, err := ziwei.ParseBranch(req.Hour)
	if err != nil {
		return domain.ProfileFacts{}, err
	}
	facts := domain.ProfileFacts{
		Name:       req.Name,
		LunarYear:  req.LunarYear,
		LunarMonth: req.LunarMonth,
		LunarDay:   req.LunarDay,
		Hour:       hour,
	}
	if req.Year != "" {
		year, err := ziwei.ParseStemBranch(req.Year)
		if err != nil {
			return domain.ProfileFacts{}, err
		}
		facts.YearStem = &year.Stem
		facts.YearBranch = &year.Branch
	}
	return facts, nil
}

// ProfileResponse is the API view of a birth profile.
type ProfileResponse struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	LunarYear  int          `json:"lunar_year"`
	LunarMonth int          `json:"lunar_month"`
	LunarDay   int          `json:"lunar_day"`
	Hour       ziwei.Branch `json:"hour"`
	Year       string       `json:"year,omitempty"`
	Complete   bool         `json:"complete"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func profileToResponse(p *domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:         p.ID,
		Name:       p.Name,
		LunarYear:  p.LunarYear,
		LunarMonth: p.LunarMonth,
		LunarDay:   p.LunarDay,
		Hour:       p.Hour,
		Complete:   p.IsComplete(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.IsComplete() {
		resp.Year = ziwei.StemBranch{Stem: *p.YearStem, Branch: *p.YearBranch}.String()
	}
	return resp
}

func profilesToResponse(profiles []*domain.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, profileToResponse(p))
	}
	return out
}

// RelationsResponse reports a palace's relation set together with the
// related palaces themselves, target first.
type RelationsResponse struct {
	Palace   ziwei.PalaceName     `json:"palace"`
	Relation ziwei.PalaceRelation `json:"relation"`
	Palaces  []ziwei.Palace       `json:"palaces"`
}

func relationsToResponse(
	chart *ziwei.Chart,
	palace ziwei.PalaceName,
	rel ziwei.PalaceRelation,
) (RelationsResponse, error) {
	set := rel.Set()
	palaces := make([]ziwei.Palace, 0, len(set))
	for _, ordinal := range set {
		p, err := chart.Palace(ziwei.PalaceName(ordinal))
		if err != nil {
			return RelationsResponse{}, err
		}
		palaces = append(palaces, p)
	}
	return RelationsResponse{Palace: palace, Relation: rel, Palaces: palaces}, nil
}

// PatternsResponse lists the classical patterns a chart satisfies.
type PatternsResponse struct {
	LifeBranch ziwei.Branch         `json:"life_branch"`
	Patterns   []ziwei.PatternMatch `json:"patterns"`
}

func patternsToResponse(chart *ziwei.Chart, matches []ziwei.PatternMatch) PatternsResponse {
	if matches == nil {
		matches = []ziwei.PatternMatch{}
	}
	return PatternsResponse{LifeBranch: chart.LifeBranch, Patterns: matches}
}

// ProfileChartsResponse holds one entry per profile the caller owns.
type ProfileChartsResponse struct {
	Charts []ProfileChartResponse `json:"charts"`
}

// ProfileChartResponse is one batch entry. Error is set instead of Chart
// when the profile cannot be charted.
type ProfileChartResponse struct {
	Profile ProfileResponse `json:"profile"`
	Chart   *ziwei.Chart    `json:"chart,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func profileChartsToResponse(charts []service.ProfileChart) ProfileChartsResponse {
	out := make([]ProfileChartResponse, 0, len(charts))
	for _, pc := range charts {
		out = append(out, ProfileChartResponse{
			Profile: profileToResponse(pc.Profile),
			Chart:   pc.Chart,
			Error:   pc.Error,
		})
	}
	return ProfileChartsResponse{Charts: out}
}

// ReadingResponse is the API view of a chart reading.
type ReadingResponse struct {
	ID        uuid.UUID            `json:"id"`
	ProfileID uuid.UUID            `json:"profile_id"`
	Status    domain.ReadingStatus `json:"status"`
	Content   string               `json:"content,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func readingToResponse(r *domain.Reading) ReadingResponse {
	return ReadingResponse{
		ID:        r.ID,
		ProfileID: r.ProfileID,
		Status:    r.Status,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
