package ziwei

import "fmt"

// BirthFacts are the lunar birth facts a chart is computed from. They are
// produced by a calendar converter; the engine never derives them.
type BirthFacts struct {
	LunarYear  int        `json:"lunar_year" yaml:"lunar_year"`
	LunarMonth int        `json:"lunar_month" yaml:"lunar_month"`
	LunarDay   int        `json:"lunar_day" yaml:"lunar_day"`
	Hour       Branch     `json:"hour" yaml:"hour"`
	Year       StemBranch `json:"year" yaml:"year"`
}

// Validate checks the facts are complete and in range.
func (f BirthFacts) Validate() error {
	if f.LunarMonth < 1 || f.LunarMonth > 12 {
		return fmt.Errorf("%w: lunar month %d", ErrInvalidInput, f.LunarMonth)
	}
	if f.LunarDay < 1 || f.LunarDay > 30 {
		return fmt.Errorf("%w: lunar day %d", ErrInvalidInput, f.LunarDay)
	}
	if !f.Hour.Valid() {
		return fmt.Errorf("%w: hour branch %d", ErrInvalidInput, int(f.Hour))
	}
	if !f.Year.Stem.Valid() {
		return fmt.Errorf("%w: year stem %d", ErrInvalidSymbol, int(f.Year.Stem))
	}
	if !f.Year.Branch.Valid() {
		return fmt.Errorf("%w: year branch %d", ErrInvalidSymbol, int(f.Year.Branch))
	}
	return nil
}

// Chart is the complete natal chart. Palaces are indexed by ordinal, so
// the Life Palace is always Palaces[0].
type Chart struct {
	Facts             BirthFacts `json:"facts" yaml:"facts"`
	Palaces           Ring       `json:"palaces" yaml:"palaces"`
	LifeBranch        Branch     `json:"life_branch" yaml:"life_branch"`
	BodyBranch        Branch     `json:"body_branch" yaml:"body_branch"`
	LifePalaceOrdinal int        `json:"life_palace_ordinal" yaml:"life_palace_ordinal"`
	BodyPalaceOrdinal int        `json:"body_palace_ordinal" yaml:"body_palace_ordinal"`
	Bureau            Bureau     `json:"bureau" yaml:"bureau"`
	PurpleStarBranch  Branch     `json:"purple_star_branch" yaml:"purple_star_branch"`
}

// Palace returns a copy of the palace with the given role.
func (c *Chart) Palace(name PalaceName) (Palace, error) {
	if !name.Valid() {
		return Palace{}, fmt.Errorf("%w: palace %d", ErrInvalidInput, int(name))
	}
	return c.Palaces[name].clone(), nil
}

// PalaceOfStar returns the palace holding the named star.
func (c *Chart) PalaceOfStar(name StarName) (Palace, bool) {
	for i := range c.Palaces {
		if c.Palaces[i].HasStar(name) {
			return c.Palaces[i].clone(), true
		}
	}
	return Palace{}, false
}

// ComputeChart runs the full pipeline: Life/Body location, ring naming
// and stems, bureau, star placement and the four transformations.
func ComputeChart(facts BirthFacts) (chart *Chart, err error) {
	defer recoverLookup(&err)

	if err := facts.Validate(); err != nil {
		return nil, err
	}

	life, body, err := LocateLifeBody(facts.LunarMonth, facts.Hour)
	if err != nil {
		return nil, err
	}

	ring, err := BuildRing(life, body, facts.Year.Stem)
	if err != nil {
		return nil, err
	}

	bureau, err := ResolveBureau(ring[Life].StemBranch())
	if err != nil {
		return nil, err
	}

	purple, err := PurpleStarBranch(bureau.Number, facts.LunarDay)
	if err != nil {
		return nil, err
	}

	placed, err := PlaceStars(ring, purple, facts)
	if err != nil {
		return nil, err
	}

	tagged, err := TagTransformations(placed, facts.Year.Stem)
	if err != nil {
		return nil, err
	}

	return &Chart{
		Facts:             facts,
		Palaces:           tagged,
		LifeBranch:        life,
		BodyBranch:        body,
		LifePalaceOrdinal: int(Life),
		BodyPalaceOrdinal: tagged.OrdinalOf(body),
		Bureau:            bureau,
		PurpleStarBranch:  purple,
	}, nil
}
