package ziwei

import (
	"fmt"
	"strconv"
	"strings"
)

// PalaceName is one of the twelve palace roles. Its value is the palace's
// ordinal in the naming walk, so Life is 0 and Parents is 11.
type PalaceName int

const (
	Life PalaceName = iota
	Siblings
	Spouse
	Children
	Wealth
	Health
	Travel
	Friends
	Career
	Property
	Fortune
	Parents
)

// PalaceCount is the number of palaces on the ring.
const PalaceCount = 12

var palaceNames = [PalaceCount]struct {
	english string
	chinese string
}{
	{"Life", "命宫"},
	{"Siblings", "兄弟"},
	{"Spouse", "夫妻"},
	{"Children", "子女"},
	{"Wealth", "财帛"},
	{"Health", "疾厄"},
	{"Travel", "迁移"},
	{"Friends", "交友"},
	{"Career", "官禄"},
	{"Property", "田宅"},
	{"Fortune", "福德"},
	{"Parents", "父母"},
}

// Valid reports whether n is one of the twelve palace roles.
func (n PalaceName) Valid() bool { return n >= 0 && n < PalaceCount }

func (n PalaceName) String() string {
	if !n.Valid() {
		return fmt.Sprintf("PalaceName(%d)", int(n))
	}
	return palaceNames[n].english + " Palace"
}

// Chinese returns the traditional label, e.g. 命宫.
func (n PalaceName) Chinese() string {
	if !n.Valid() {
		return ""
	}
	return palaceNames[n].chinese
}

// MarshalText encodes the palace as its English name.
func (n PalaceName) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: palace %d", ErrInvalidInput, int(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText accepts anything ParsePalace accepts.
func (n *PalaceName) UnmarshalText(text []byte) error {
	v, err := ParsePalace(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// ParsePalace resolves a palace from an ordinal ("0".."11"), its English
// name with or without the "Palace" suffix, or its Chinese label.
func ParsePalace(s string) (PalaceName, error) {
	key := strings.TrimSpace(s)
	if i, err := strconv.Atoi(key); err == nil {
		if PalaceName(i).Valid() {
			return PalaceName(i), nil
		}
		return 0, fmt.Errorf("%w: palace ordinal %d", ErrInvalidInput, i)
	}
	lower := strings.TrimSuffix(strings.ToLower(key), " palace")
	for i, p := range palaceNames {
		chinese := []rune(p.chinese)
		if lower == strings.ToLower(p.english) || key == p.chinese || key == string(chinese[0]) {
			return PalaceName(i), nil
		}
	}
	return 0, fmt.Errorf("%w: palace %q", ErrInvalidInput, s)
}

// LocateLifeBody returns the Life and Body Palace branches for a lunar
// month (1..12) and birth hour. Both walks start at 寅 advanced by month−1;
// Life walks back by the hour's ordinal and Body walks forward.
func LocateLifeBody(month int, hour Branch) (life, body Branch, err error) {
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: lunar month %d", ErrInvalidInput, month)
	}
	if !hour.Valid() {
		return 0, 0, fmt.Errorf("%w: hour branch %d", ErrInvalidInput, int(hour))
	}
	start := BranchYin.Add(month - 1)
	return start.Add(-int(hour)), start.Add(int(hour)), nil
}

// tigerStems is the Five-Tiger rule: the stem placed at 寅, indexed by
// year stem mod 5 (甲己, 乙庚, 丙辛, 丁壬, 戊癸).
var tigerStems = [5]Stem{StemBing, StemWu, StemGeng, StemRen, StemJia}

// TigerStem returns the stem assigned to the 寅 branch for a year stem.
func TigerStem(yearStem Stem) Stem {
	if !yearStem.Valid() {
		panic(missf("five-tiger table", yearStem))
	}
	return tigerStems[yearStem%5]
}

// PalaceStem returns the stem of the palace on branch b, walking forward
// from 寅 one stem per branch.
func PalaceStem(yearStem Stem, b Branch) Stem {
	return TigerStem(yearStem).Add(Offset(int(b), -int(BranchYin), BranchCount))
}

// Palace is one position of the chart ring.
type Palace struct {
	Name            PalaceName          `json:"name" yaml:"name"`
	Branch          Branch              `json:"branch" yaml:"branch"`
	Stem            Stem                `json:"stem" yaml:"stem"`
	Ordinal         int                 `json:"ordinal" yaml:"ordinal"`
	Stars           []Star              `json:"stars" yaml:"stars"`
	Transformations []TransformationTag `json:"transformations" yaml:"transformations"`
	IsLife          bool                `json:"is_life" yaml:"is_life"`
	IsBody          bool                `json:"is_body" yaml:"is_body"`
}

// StemBranch returns the palace's sexagenary pair.
func (p Palace) StemBranch() StemBranch { return StemBranch{Stem: p.Stem, Branch: p.Branch} }

// HasStar reports whether the named star sits in the palace.
func (p Palace) HasStar(name StarName) bool {
	_, ok := p.Star(name)
	return ok
}

// Star returns the named star if it sits in the palace.
func (p Palace) Star(name StarName) (Star, bool) {
	for _, s := range p.Stars {
		if s.Name == name {
			return s, true
		}
	}
	return Star{}, false
}

// MainStars returns the main stars of the palace in placement order.
func (p Palace) MainStars() []Star {
	var out []Star
	for _, s := range p.Stars {
		if s.Category == CategoryMain {
			out = append(out, s)
		}
	}
	return out
}

// clone returns a deep copy so later pipeline stages never share slices
// with earlier ones. Empty star and tag lists stay non-nil.
func (p Palace) clone() Palace {
	c := p
	c.Stars = append(make([]Star, 0, len(p.Stars)), p.Stars...)
	c.Transformations = append(make([]TransformationTag, 0, len(p.Transformations)), p.Transformations...)
	return c
}

// Ring is the twelve palaces indexed by ordinal.
type Ring [PalaceCount]Palace

// BuildRing names the twelve palaces starting at the Life branch and
// assigns each its Five-Tiger stem. Stars are left empty.
func BuildRing(life, body Branch, yearStem Stem) (ring Ring, err error) {
	if !life.Valid() || !body.Valid() || !yearStem.Valid() {
		return Ring{}, fmt.Errorf("%w: life %d body %d year stem %d",
			ErrInvalidSymbol, int(life), int(body), int(yearStem))
	}
	for k := 0; k < PalaceCount; k++ {
		b := life.Add(k)
		ring[k] = Palace{
			Name:            PalaceName(k),
			Branch:          b,
			Stem:            PalaceStem(yearStem, b),
			Ordinal:         k,
			Stars:           []Star{},
			Transformations: []TransformationTag{},
			IsLife:          k == 0,
			IsBody:          b == body,
		}
	}
	return ring, nil
}

// OrdinalOf returns the ordinal of the palace on branch b.
func (r *Ring) OrdinalOf(b Branch) int {
	return Offset(int(b), -int(r[0].Branch), BranchCount)
}

// At returns the palace on branch b.
func (r *Ring) At(b Branch) *Palace {
	return &r[r.OrdinalOf(b)]
}

func (r Ring) clone() Ring {
	var c Ring
	for i := range r {
		c[i] = r[i].clone()
	}
	return c
}
