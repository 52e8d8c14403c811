package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
)

// Profile validation errors
var (
	ErrEmptyProfileID     = errors.New("profile ID cannot be empty")
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrEmptyProfileName   = errors.New("profile name cannot be empty")
	ErrProfileNameTooLong = errors.New("profile name must be at most 100 characters")
	ErrInvalidLunarDate   = errors.New("invalid lunar date")
	ErrInvalidBirthHour   = errors.New("invalid birth hour branch")
	ErrInvalidYearPillar  = errors.New("invalid year stem-branch")
)

const maxProfileNameLength = 100

// Profile is a stored set of lunar birth facts. The facts come from a
// calendar converter outside this service; the year stem-branch may be
// missing until that converter fills it in.
type Profile struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	Name       string        `json:"name"`
	LunarYear  int           `json:"lunar_year"`
	LunarMonth int           `json:"lunar_month"`
	LunarDay   int           `json:"lunar_day"`
	Hour       ziwei.Branch  `json:"hour"`
	YearStem   *ziwei.Stem   `json:"year_stem,omitempty"`
	YearBranch *ziwei.Branch `json:"year_branch,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ProfileFacts are the user-supplied fields of a profile.
type ProfileFacts struct {
	Name       string
	LunarYear  int
	LunarMonth int
	LunarDay   int
	Hour       ziwei.Branch
	YearStem   *ziwei.Stem
	YearBranch *ziwei.Branch
}

// NewProfile creates a new Profile owned by userID.
// Returns an error if validation fails.
func NewProfile(userID uuid.UUID, facts ProfileFacts) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	profile.apply(facts)

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Update replaces the profile's facts and bumps UpdatedAt.
// The profile is left unchanged if the new facts are invalid.
func (p *Profile) Update(facts ProfileFacts) error {
	updated := *p
	updated.apply(facts)
	updated.UpdatedAt = time.Now().UTC()
	if err := updated.Validate(); err != nil {
		return err
	}
	*p = updated
	return nil
}

func (p *Profile) apply(facts ProfileFacts) {
	p.Name = strings.TrimSpace(facts.Name)
	p.LunarYear = facts.LunarYear
	p.LunarMonth = facts.LunarMonth
	p.LunarDay = facts.LunarDay
	p.Hour = facts.Hour
	p.YearStem = facts.YearStem
	p.YearBranch = facts.YearBranch
}

// Validate checks if the Profile has valid data.
// A profile may be stored without its year stem-branch, but if either half
// is present both must be valid.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if p.Name == "" {
		return ErrEmptyProfileName
	}
	if utf8.RuneCountInString(p.Name) > maxProfileNameLength {
		return ErrProfileNameTooLong
	}
	if p.LunarYear < 1 || p.LunarMonth < 1 || p.LunarMonth > 12 || p.LunarDay < 1 || p.LunarDay > 30 {
		return ErrInvalidLunarDate
	}
	if !p.Hour.Valid() {
		return ErrInvalidBirthHour
	}
	if (p.YearStem != nil && !p.YearStem.Valid()) || (p.YearBranch != nil && !p.YearBranch.Valid()) {
		return ErrInvalidYearPillar
	}
	if p.YearStem != nil && p.YearBranch != nil && int(*p.YearStem)%2 != int(*p.YearBranch)%2 {
		return ErrInvalidYearPillar
	}
	return nil
}

// IsComplete reports whether the profile carries every fact a chart needs.
func (p *Profile) IsComplete() bool {
	return p.YearStem != nil && p.YearBranch != nil
}

// BirthFacts converts the profile into chart engine input. A profile
// without its year stem-branch fails with ErrIncompleteProfile, which also
// matches ziwei.ErrInvalidInput; nothing is defaulted.
func (p *Profile) BirthFacts() (ziwei.BirthFacts, error) {
	if !p.IsComplete() {
		return ziwei.BirthFacts{}, fmt.Errorf("%w: %w: profile %s has no year stem-branch",
			ErrIncompleteProfile, ziwei.ErrInvalidInput, p.ID)
	}
	return ziwei.BirthFacts{
		LunarYear:  p.LunarYear,
		LunarMonth: p.LunarMonth,
		LunarDay:   p.LunarDay,
		Hour:       p.Hour,
		Year:       ziwei.StemBranch{Stem: *p.YearStem, Branch: *p.YearBranch},
	}, nil
}
