package ziwei

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
)

// Scope names a set of palaces relative to the Life Palace.
type Scope string

const (
	ScopeSelf      Scope = "self"
	ScopeOpposite  Scope = "opposite"
	ScopePrev      Scope = "prev"
	ScopeNext      Scope = "next"
	ScopeFlank     Scope = "flank"
	ScopeFacing    Scope = "facing"
	ScopeRelations Scope = "relations"
)

// Mode says how a requirement's stars must appear within its scope.
type Mode string

const (
	// ModeAll requires each star somewhere in the scope.
	ModeAll Mode = "all"
	// ModeTogether requires all stars in a single palace of the scope.
	ModeTogether Mode = "together"
	// ModeSplit requires two stars on a two-palace scope, one in each.
	ModeSplit Mode = "split"
	// ModeNoMain requires the scope to hold no main star.
	ModeNoMain Mode = "no_main"
)

// Requirement is one condition of a pattern.
type Requirement struct {
	Scope           Scope       `toml:"scope"`
	Mode            Mode        `toml:"mode"`
	Stars           []StarName  `toml:"stars"`
	MinBrightness   *Brightness `toml:"min_brightness"`
	Transformations []Role      `toml:"transformations"`
}

// Pattern is a classical configuration. It matches when every
// requirement holds.
type Pattern struct {
	ID          string        `toml:"id"`
	Name        string        `toml:"name"`
	Auspicious  bool          `toml:"auspicious"`
	Description string        `toml:"description"`
	Requires    []Requirement `toml:"require"`
}

// PatternMatch reports a satisfied pattern with the palaces and stars
// that satisfied it.
type PatternMatch struct {
	ID         string       `json:"id" yaml:"id"`
	Name       string       `json:"name" yaml:"name"`
	Auspicious bool         `json:"auspicious" yaml:"auspicious"`
	Palaces    []PalaceName `json:"palaces" yaml:"palaces"`
	Stars      []StarName   `json:"stars" yaml:"stars"`
}

// ErrInvalidCatalogue is returned when a pattern catalogue fails to parse
// or validate.
var ErrInvalidCatalogue = errors.New("invalid pattern catalogue")

//go:embed patterns.toml
var defaultCatalogueTOML []byte

var defaultCatalogue = mustLoadCatalogue(defaultCatalogueTOML)

func mustLoadCatalogue(data []byte) []Pattern {
	patterns, err := LoadCatalogue(data)
	if err != nil {
		panic(fmt.Sprintf("ziwei: built-in catalogue: %v", err))
	}
	return patterns
}

// LoadCatalogue decodes and validates a TOML pattern catalogue.
func LoadCatalogue(data []byte) ([]Pattern, error) {
	var doc struct {
		Patterns []Pattern `toml:"pattern"`
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	return ValidateCatalogue(doc.Patterns)
}

// ValidateCatalogue checks a caller-built catalogue and returns a copy
// with defaults filled in. The input is not modified.
func ValidateCatalogue(patterns []Pattern) ([]Pattern, error) {
	out := make([]Pattern, len(patterns))
	seen := make(map[string]bool, len(patterns))
	for i, src := range patterns {
		p := src
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: pattern %d needs an id and a name", ErrInvalidCatalogue, i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate pattern id %q", ErrInvalidCatalogue, p.ID)
		}
		seen[p.ID] = true
		if len(p.Requires) == 0 {
			return nil, fmt.Errorf("%w: pattern %q has no requirements", ErrInvalidCatalogue, p.ID)
		}
		p.Requires = append([]Requirement(nil), src.Requires...)
		for j := range p.Requires {
			if err := p.Requires[j].normalize(); err != nil {
				return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidCatalogue, p.ID, err)
			}
		}
		out[i] = p
	}
	return out, nil
}

func (r *Requirement) normalize() error {
	if r.Mode == "" {
		r.Mode = ModeAll
	}
	width := len(scopeOrdinals(r.Scope, nil))
	if width == 0 {
		return fmt.Errorf("unknown scope %q", r.Scope)
	}
	switch r.Mode {
	case ModeAll, ModeTogether:
		if len(r.Stars) == 0 && len(r.Transformations) == 0 {
			return fmt.Errorf("mode %q needs stars or transformations", r.Mode)
		}
	case ModeSplit:
		if len(r.Stars) != 2 || width != 2 {
			return fmt.Errorf("mode %q needs two stars on a two-palace scope", r.Mode)
		}
	case ModeNoMain:
		if len(r.Stars) != 0 || len(r.Transformations) != 0 {
			return fmt.Errorf("mode %q takes no stars", r.Mode)
		}
	default:
		return fmt.Errorf("unknown mode %q", r.Mode)
	}
	if r.MinBrightness != nil && len(r.Stars) == 0 {
		return errors.New("min_brightness without stars")
	}
	return nil
}

// Catalogue returns a copy of the built-in pattern catalogue.
func Catalogue() []Pattern {
	return append([]Pattern(nil), defaultCatalogue...)
}

// scopeOrdinals lists the palace ordinals a scope covers. The Life
// Palace is ordinal 0, so prev is 11 and next is 1. A nil ring is
// enough for every scope except relations, which only needs branches.
func scopeOrdinals(scope Scope, ring *Ring) []int {
	switch scope {
	case ScopeSelf:
		return []int{0}
	case ScopeOpposite:
		return []int{6}
	case ScopePrev:
		return []int{PalaceCount - 1}
	case ScopeNext:
		return []int{1}
	case ScopeFlank:
		return []int{PalaceCount - 1, 1}
	case ScopeFacing:
		return []int{0, 6}
	case ScopeRelations:
		if ring == nil {
			return []int{0, 6, 4, 8}
		}
		return relationOnRing(ring, 0).Set()
	default:
		return nil
	}
}

// AnalyzePatterns matches the built-in catalogue against a chart.
func AnalyzePatterns(chart *Chart) ([]PatternMatch, error) {
	return matchCatalogue(chart, defaultCatalogue)
}

// MatchPatterns matches a catalogue against a chart, returning the
// satisfied patterns in catalogue order. The catalogue is validated
// first, so a malformed one fails with ErrInvalidCatalogue.
func MatchPatterns(chart *Chart, patterns []Pattern) ([]PatternMatch, error) {
	valid, err := ValidateCatalogue(patterns)
	if err != nil {
		return nil, err
	}
	return matchCatalogue(chart, valid)
}

// matchCatalogue expects a validated catalogue.
func matchCatalogue(chart *Chart, patterns []Pattern) ([]PatternMatch, error) {
	if chart == nil {
		return nil, fmt.Errorf("%w: nil chart", ErrInvalidInput)
	}
	matches := []PatternMatch{}
	for _, p := range patterns {
		if m, ok := matchPattern(&chart.Palaces, p); ok {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

func matchPattern(ring *Ring, p Pattern) (PatternMatch, bool) {
	palaces := map[int]bool{}
	var stars []StarName
	for _, req := range p.Requires {
		hit, ok := req.match(ring)
		if !ok {
			return PatternMatch{}, false
		}
		for o := range hit.palaces {
			palaces[o] = true
		}
		stars = appendUnique(stars, hit.stars...)
	}

	ordinals := make([]int, 0, len(palaces))
	for o := range palaces {
		ordinals = append(ordinals, o)
	}
	sort.Ints(ordinals)
	names := make([]PalaceName, len(ordinals))
	for i, o := range ordinals {
		names[i] = ring[o].Name
	}
	return PatternMatch{
		ID:         p.ID,
		Name:       p.Name,
		Auspicious: p.Auspicious,
		Palaces:    names,
		Stars:      stars,
	}, true
}

type requirementHit struct {
	palaces map[int]bool
	stars   []StarName
}

func (r Requirement) match(ring *Ring) (requirementHit, bool) {
	scope := scopeOrdinals(r.Scope, ring)
	hit := requirementHit{palaces: map[int]bool{}}

	switch r.Mode {
	case ModeNoMain:
		for _, o := range scope {
			if len(ring[o].MainStars()) > 0 {
				return hit, false
			}
			hit.palaces[o] = true
		}
		return hit, true

	case ModeSplit:
		a, b := scope[0], scope[1]
		x, y := r.Stars[0], r.Stars[1]
		switch {
		case r.holds(ring, a, x) && r.holds(ring, b, y):
		case r.holds(ring, a, y) && r.holds(ring, b, x):
		default:
			return hit, false
		}
		hit.palaces[a], hit.palaces[b] = true, true
		hit.stars = append(hit.stars, x, y)

	case ModeTogether:
		found := -1
		for _, o := range scope {
			if r.allIn(ring, o) {
				found = o
				break
			}
		}
		if found < 0 {
			return hit, false
		}
		hit.palaces[found] = true
		hit.stars = append(hit.stars, r.Stars...)
		scope = []int{found}

	default:
		for _, star := range r.Stars {
			o, ok := r.find(ring, scope, star)
			if !ok {
				return hit, false
			}
			hit.palaces[o] = true
			hit.stars = append(hit.stars, star)
		}
	}

	for _, role := range r.Transformations {
		o, star, ok := findTransformation(ring, scope, role)
		if !ok {
			return hit, false
		}
		hit.palaces[o] = true
		hit.stars = appendUnique(hit.stars, star)
	}
	return hit, true
}

// holds reports whether the star sits in the palace bright enough.
func (r Requirement) holds(ring *Ring, ordinal int, name StarName) bool {
	s, ok := ring[ordinal].Star(name)
	if !ok {
		return false
	}
	return r.MinBrightness == nil || s.Brightness.AtLeast(*r.MinBrightness)
}

func (r Requirement) allIn(ring *Ring, ordinal int) bool {
	for _, star := range r.Stars {
		if !r.holds(ring, ordinal, star) {
			return false
		}
	}
	for _, role := range r.Transformations {
		if _, _, ok := findTransformation(ring, []int{ordinal}, role); !ok {
			return false
		}
	}
	return true
}

func (r Requirement) find(ring *Ring, scope []int, name StarName) (int, bool) {
	for _, o := range scope {
		if r.holds(ring, o, name) {
			return o, true
		}
	}
	return 0, false
}

func findTransformation(ring *Ring, scope []int, role Role) (int, StarName, bool) {
	for _, o := range scope {
		for _, t := range ring[o].Transformations {
			if t.Role == role {
				return o, t.Star, true
			}
		}
	}
	return 0, 0, false
}

func appendUnique(list []StarName, names ...StarName) []StarName {
	for _, n := range names {
		dup := false
		for _, existing := range list {
			if existing == n {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, n)
		}
	}
	return list
}
